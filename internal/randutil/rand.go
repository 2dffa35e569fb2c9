package randutil

import "math/rand"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises seed derivation so that all call sites get
// reproducible sequences from a single configured seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix(uint64(seed)))))
}

// Fork derives an independent deterministic generator from an existing one,
// for worker goroutines that must not share a source.
func Fork(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewSource(int64(mix(uint64(rng.Int63()) + goldenRatio64))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
