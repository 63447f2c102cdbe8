// Package randutil seeds the *rand.Rand that drives every shuffle and
// cut-card draw in the engine (spec §9.4 "RNG injection"). A session's
// deals and dealer-selection cut are only reproducible bit-for-bit (spec
// §8.2 L5) if the int64 seed callers pass in — a CLI flag, a saved game
// id, a clock reading — expands into PCG state the same way every time,
// which is what Seeded does.
package randutil

import "math/rand/v2"

// splitMixIncrement is the odd 64-bit constant from Steele, Lea & Flood's
// SplitMix64 generator, used here purely to decorrelate the two halves of
// a single caller-supplied seed before they become PCG stream/sequence
// state.
const splitMixIncrement = 0x9e3779b97f4a7c15

// Seeded returns a *rand.Rand whose entire future sequence is determined
// by seed: the same seed always produces the same shuffles and cut-card
// draws, which is what lets a replayed action sequence reproduce a
// session exactly.
func Seeded(seed int64) *rand.Rand {
	lo := splitMix64(uint64(seed))
	hi := splitMix64(uint64(seed) + splitMixIncrement)
	return rand.New(rand.NewPCG(lo, hi))
}

// splitMix64 applies SplitMix64's output mixing to x (it adds no
// increment; Seeded does that itself), spreading a
// narrow or low-entropy input (e.g. a Unix timestamp or a small test
// seed) across the full output range before it seeds PCG.
func splitMix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
