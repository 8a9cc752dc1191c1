// Package audio recovers the parameters a transcription request needs
// (container format, sample rate) from the uploaded bytes themselves.
// Declared filenames lie too often to trust for anything beyond picking
// a scratch-file suffix.
package audio

import (
	"encoding/binary"
	"fmt"
)

type Format string

const (
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
)

// Params describes a staged recording well enough to transcribe it.
type Params struct {
	Format          Format
	SampleRateHertz int
	BitsPerSample   int // PCM only, 0 for MP3
	Channels        int
}

// Probe inspects the leading bytes of a recording and returns its real
// parameters. It understands RIFF/WAVE (PCM) and MPEG audio frames,
// including an ID3v2 prefix.
func Probe(data []byte) (Params, error) {
	if p, err := probeWAV(data); err == nil {
		return p, nil
	}
	if p, err := probeMP3(data); err == nil {
		return p, nil
	}
	return Params{}, fmt.Errorf("unrecognized audio container")
}

func probeWAV(data []byte) (Params, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Params{}, fmt.Errorf("not a RIFF/WAVE stream")
	}

	// Walk the chunk list looking for "fmt ".
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if chunkID == "fmt " {
			if chunkSize < 16 || body+16 > len(data) {
				return Params{}, fmt.Errorf("truncated fmt chunk")
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			if audioFormat != 1 { // PCM
				return Params{}, fmt.Errorf("unsupported WAVE format code %d", audioFormat)
			}
			channels := int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate := int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample := int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			if sampleRate <= 0 || channels <= 0 {
				return Params{}, fmt.Errorf("implausible WAVE parameters")
			}
			return Params{
				Format:          FormatWAV,
				SampleRateHertz: sampleRate,
				BitsPerSample:   bitsPerSample,
				Channels:        channels,
			}, nil
		}
		// Chunks are word-aligned.
		offset = body + chunkSize + (chunkSize & 1)
	}
	return Params{}, fmt.Errorf("no fmt chunk found")
}

// MPEG sample-rate tables indexed by version bits then rate bits.
var mp3SampleRates = map[byte][3]int{
	0b11: {44100, 48000, 32000}, // MPEG1
	0b10: {22050, 24000, 16000}, // MPEG2
	0b00: {11025, 12000, 8000},  // MPEG2.5
}

func probeMP3(data []byte) (Params, error) {
	offset := 0

	// Skip an ID3v2 tag if present; its size is a 28-bit syncsafe integer.
	if len(data) >= 10 && string(data[0:3]) == "ID3" {
		size := int(data[6]&0x7F)<<21 | int(data[7]&0x7F)<<14 | int(data[8]&0x7F)<<7 | int(data[9]&0x7F)
		offset = 10 + size
	}

	// Find the first frame sync. Allow a little slack for padding bytes.
	for i := offset; i+4 <= len(data) && i < offset+4096; i++ {
		if data[i] != 0xFF || data[i+1]&0xE0 != 0xE0 {
			continue
		}
		version := (data[i+1] >> 3) & 0x03
		layer := (data[i+1] >> 1) & 0x03
		rateBits := (data[i+2] >> 2) & 0x03
		if version == 0b01 || layer == 0 || rateBits == 0b11 {
			continue // reserved values, false sync
		}
		rates, ok := mp3SampleRates[version]
		if !ok {
			continue
		}
		channelMode := (data[i+3] >> 6) & 0x03
		channels := 2
		if channelMode == 0b11 {
			channels = 1
		}
		return Params{
			Format:          FormatMP3,
			SampleRateHertz: rates[rateBits],
			Channels:        channels,
		}, nil
	}
	return Params{}, fmt.Errorf("no MPEG frame sync found")
}
