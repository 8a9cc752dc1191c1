package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePostLabel(t *testing.T) {
	tests := []struct {
		name          string
		reply         string
		numCandidates int
		want          int
		wantErr       bool
	}{
		{name: "exact label", reply: "Post 2", numCandidates: 3, want: 1},
		{name: "first post", reply: "Post 1", numCandidates: 1, want: 0},
		{name: "label with chatter", reply: "I choose Post 3.", numCandidates: 5, want: 2},
		{name: "no space", reply: "Post3", numCandidates: 3, want: 2},
		{name: "trailing newline", reply: "Post 2\n", numCandidates: 2, want: 1},
		{name: "zero is out of range", reply: "Post 0", numCandidates: 3, wantErr: true},
		{name: "above range", reply: "Post 4", numCandidates: 3, wantErr: true},
		{name: "no label at all", reply: "the second one looks best", numCandidates: 3, wantErr: true},
		{name: "empty reply", reply: "", numCandidates: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePostLabel(tt.reply, tt.numCandidates)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadRecommendation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
