// Package random holds the uniform helpers used for turn order, impostor
// selection and word selection. Callers pass their own *rand.Rand so that
// tests can run with a fixed seed.
package random

import (
	"math/rand/v2"
	"time"
)

// New returns a generator seeded with seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeeded returns a generator seeded from the wall clock.
func NewTimeSeeded() *rand.Rand {
	return New(uint64(time.Now().UnixNano()))
}

// Shuffle permutes s in place (Fisher-Yates).
func Shuffle[T any](r *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Pick returns a uniformly chosen element of s. ok is false when s is empty.
func Pick[T any](r *rand.Rand, s []T) (v T, ok bool) {
	if len(s) == 0 {
		return v, false
	}
	return s[r.IntN(len(s))], true
}

// Sample returns n distinct elements of s, chosen without replacement.
// s is not modified.
func Sample[T any](r *rand.Rand, s []T, n int) []T {
	if n > len(s) {
		n = len(s)
	}
	if n <= 0 {
		return nil
	}
	cp := make([]T, len(s))
	copy(cp, s)
	Shuffle(r, cp)
	return cp[:n]
}

// Chance reports true with probability p.
func Chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
