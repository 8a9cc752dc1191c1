package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func wavBytes(t *testing.T, sampleRate, channels, bitsPerSample int) []byte {
	t.Helper()
	body := make([]byte, 0, 64)
	body = append(body, []byte("WAVE")...)
	body = append(body, []byte("fmt ")...)
	body = binary.LittleEndian.AppendUint32(body, 16)
	body = binary.LittleEndian.AppendUint16(body, 1) // PCM
	body = binary.LittleEndian.AppendUint16(body, uint16(channels))
	body = binary.LittleEndian.AppendUint32(body, uint32(sampleRate))
	byteRate := sampleRate * channels * bitsPerSample / 8
	body = binary.LittleEndian.AppendUint32(body, uint32(byteRate))
	body = binary.LittleEndian.AppendUint16(body, uint16(channels*bitsPerSample/8))
	body = binary.LittleEndian.AppendUint16(body, uint16(bitsPerSample))
	body = append(body, []byte("data")...)
	body = binary.LittleEndian.AppendUint32(body, 4)
	body = append(body, 0, 0, 0, 0)

	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

func TestProbe_WAV(t *testing.T) {
	params, err := Probe(wavBytes(t, 44100, 1, 16))
	require.NoError(t, err)
	require.Equal(t, FormatWAV, params.Format)
	require.Equal(t, 44100, params.SampleRateHertz)
	require.Equal(t, 16, params.BitsPerSample)
	require.Equal(t, 1, params.Channels)
}

func TestProbe_WAVNonStandardRate(t *testing.T) {
	params, err := Probe(wavBytes(t, 8000, 2, 16))
	require.NoError(t, err)
	require.Equal(t, 8000, params.SampleRateHertz)
	require.Equal(t, 2, params.Channels)
}

func TestProbe_WAVNonPCMRejected(t *testing.T) {
	data := wavBytes(t, 44100, 1, 16)
	// Flip the format code to IEEE float.
	binary.LittleEndian.PutUint16(data[20:22], 3)
	_, err := Probe(data)
	require.Error(t, err)
}

// mp3Frame builds a single MPEG1 Layer III frame header.
func mp3Frame(rateBits byte, mono bool) []byte {
	b3 := byte(0x00) // stereo
	if mono {
		b3 = 0xC0
	}
	return []byte{0xFF, 0xFB, 0x90 | rateBits<<2, b3, 0, 0, 0, 0}
}

func TestProbe_MP3(t *testing.T) {
	params, err := Probe(mp3Frame(0b00, true)) // 44100
	require.NoError(t, err)
	require.Equal(t, FormatMP3, params.Format)
	require.Equal(t, 44100, params.SampleRateHertz)
	require.Equal(t, 1, params.Channels)
}

func TestProbe_MP3WithID3Tag(t *testing.T) {
	// ID3v2 header declaring a 20-byte tag body.
	tag := append([]byte("ID3"), 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x14)
	tag = append(tag, make([]byte, 20)...)
	data := append(tag, mp3Frame(0b01, false)...) // 48000, stereo

	params, err := Probe(data)
	require.NoError(t, err)
	require.Equal(t, FormatMP3, params.Format)
	require.Equal(t, 48000, params.SampleRateHertz)
	require.Equal(t, 2, params.Channels)
}

func TestProbe_Garbage(t *testing.T) {
	_, err := Probe([]byte("definitely not audio data of any kind"))
	require.Error(t, err)

	_, err = Probe(nil)
	require.Error(t, err)
}
