package source

import "github.com/CTAG07/seedchain/pkg/rng"

// WichmannHill combines three small linear congruential generators
// (algorithm AS 183). Its output has roughly 43 bits of state, so only the
// top bits of each 32-bit sample are meaningful.
type WichmannHill struct {
	s1, s2, s3 uint32
}

var _ rng.Source = (*WichmannHill)(nil)

// NewWichmannHill returns a WichmannHill generator seeded from seed.
func NewWichmannHill(seed uint64) *WichmannHill {
	s := &WichmannHill{}
	s.Seed(seed)
	return s
}

// Seed derives the three component states from seed. Each lies in
// [1, modulus).
func (s *WichmannHill) Seed(seed uint64) {
	state := seed
	s.s1 = uint32(rng.SplitMix64(&state)%30268) + 1
	s.s2 = uint32(rng.SplitMix64(&state)%30306) + 1
	s.s3 = uint32(rng.SplitMix64(&state)%30322) + 1
}

// Float64 advances the generator and returns a value in [0, 1).
func (s *WichmannHill) Float64() float64 {
	s.s1 = (171 * s.s1) % 30269
	s.s2 = (172 * s.s2) % 30307
	s.s3 = (170 * s.s3) % 30323
	f := float64(s.s1)/30269 + float64(s.s2)/30307 + float64(s.s3)/30323
	return f - float64(int(f))
}

// Uint32 scales the next fraction onto the 32-bit domain.
func (s *WichmannHill) Uint32() uint32 {
	return uint32(s.Float64() * (1 << 32))
}
