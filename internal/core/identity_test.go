package core

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

var usernamePattern = regexp.MustCompile(`^([A-Z][a-z]+)([A-Z][a-z]+)(\d{3})$`)

func TestNewAnonymousUsername_DrawsFromFixedVocabulary(t *testing.T) {
	adjectives := map[string]bool{}
	for _, a := range usernameAdjectives {
		adjectives[a] = true
	}
	nouns := map[string]bool{}
	for _, n := range usernameNouns {
		nouns[n] = true
	}

	for i := 0; i < 200; i++ {
		name := NewAnonymousUsername()
		require.NotEmpty(t, name)

		match := usernamePattern.FindStringSubmatch(name)
		require.NotNil(t, match, "unexpected username shape: %s", name)
		require.True(t, adjectives[match[1]], "adjective %q not in vocabulary", match[1])
		require.True(t, nouns[match[2]], "noun %q not in vocabulary", match[2])

		numeral, err := strconv.Atoi(match[3])
		require.NoError(t, err)
		require.GreaterOrEqual(t, numeral, 100)
		require.LessOrEqual(t, numeral, 999)
	}
}
