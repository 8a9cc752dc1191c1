package core

import (
	"fmt"
	"math/rand/v2"
)

// Closed vocabularies for anonymous display names. Collisions are possible
// (36 combinations x 900 numerals) and accepted; no uniqueness check runs.
var (
	usernameAdjectives = []string{"Cosmic", "Quiet", "Silent", "Wandering", "Gentle", "Hidden"}
	usernameNouns      = []string{"River", "Moon", "Comet", "Oracle", "Pebble", "Star"}
)

// NewAnonymousUsername assembles a display name like "QuietComet412".
func NewAnonymousUsername() string {
	adjective := usernameAdjectives[rand.IntN(len(usernameAdjectives))]
	noun := usernameNouns[rand.IntN(len(usernameNouns))]
	return fmt.Sprintf("%s%s%d", adjective, noun, 100+rand.IntN(900))
}
