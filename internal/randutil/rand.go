// Package randutil builds the random sources used for mine placement.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand whose sequence is fully determined by seed, so a
// mine layout can be replayed from the seed alone.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Seed returns a fresh non-negative seed for games started without one
func Seed() int64 {
	return int64(rand.Uint64() >> 1)
}

// splitmix is the SplitMix64 finaliser; it spreads nearby seeds apart
func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
