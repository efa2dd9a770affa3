package source

import (
	"github.com/CTAG07/seedchain/pkg/rng"
	"gonum.org/v1/gonum/mathext/prng"
)

// MT19937 is the 32-bit Mersenne Twister.
type MT19937 struct {
	mt *prng.MT19937
}

var _ rng.Source64 = (*MT19937)(nil)

// NewMT19937 returns a Mersenne Twister seeded from seed.
func NewMT19937(seed uint64) *MT19937 {
	s := &MT19937{mt: prng.NewMT19937()}
	s.Seed(seed)
	return s
}

// Seed reinitializes the twister state. Seeds that fit in 32 bits use the
// reference init_genrand routine; wider seeds are split into two keys.
func (s *MT19937) Seed(seed uint64) {
	if seed>>32 == 0 {
		s.mt.Seed(seed)
		return
	}
	s.mt.SeedFromKeys([]uint32{uint32(seed >> 32), uint32(seed)})
}

// Uint32 returns the next value.
func (s *MT19937) Uint32() uint32 {
	return s.mt.Uint32()
}

// Uint64 returns two consecutive outputs, high word first.
func (s *MT19937) Uint64() uint64 {
	return s.mt.Uint64()
}
