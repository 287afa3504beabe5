package quiz

import (
	"math/rand"
	"time"
)

// NewRand returns a time-seeded random source. Deterministic tests construct
// their own with rand.NewSource and a fixed seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle permutes items in place using Fisher-Yates. Not cryptographically
// secure; reproducibility comes only from the caller's rng seed.
func Shuffle[T any](items []T, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
