package rng

import "time"

// SplitMix64 advances state and returns the next SplitMix64 output. It is used
// to expand a single seed into the state words a generator needs.
func SplitMix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// DefaultSeed derives seed material from the wall clock. Every call reads the
// clock, so callers should call it once when constructing a source and keep the
// value if they need to reproduce a run.
func DefaultSeed() uint64 {
	state := uint64(time.Now().UnixNano())
	return SplitMix64(&state)
}
