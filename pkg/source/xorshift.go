package source

import "github.com/CTAG07/seedchain/pkg/rng"

// Xorshift is Marsaglia's 128-bit xorshift generator with 32-bit output.
type Xorshift struct {
	x, y, z, w uint32
}

var _ rng.Source = (*Xorshift)(nil)

// NewXorshift returns an Xorshift seeded from seed.
func NewXorshift(seed uint64) *Xorshift {
	s := &Xorshift{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state from seed. The state is never all zero.
func (s *Xorshift) Seed(seed uint64) {
	state := seed
	a := rng.SplitMix64(&state)
	b := rng.SplitMix64(&state)
	s.x, s.y = uint32(a>>32), uint32(a)
	s.z, s.w = uint32(b>>32), uint32(b)
	if s.x|s.y|s.z|s.w == 0 {
		s.w = 88675123
	}
}

// Uint32 returns the next value.
func (s *Xorshift) Uint32() uint32 {
	t := s.x ^ (s.x << 11)
	s.x, s.y, s.z = s.y, s.z, s.w
	s.w = s.w ^ (s.w >> 19) ^ t ^ (t >> 8)
	return s.w
}

// XorshiftStar is the 64-bit xorshift* generator.
type XorshiftStar struct {
	state uint64
}

var _ rng.Source64 = (*XorshiftStar)(nil)

// NewXorshiftStar returns an XorshiftStar seeded from seed.
func NewXorshiftStar(seed uint64) *XorshiftStar {
	s := &XorshiftStar{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state from seed.
func (s *XorshiftStar) Seed(seed uint64) {
	state := seed
	s.state = rng.SplitMix64(&state)
	if s.state == 0 {
		s.state = 0x2545f4914f6cdd1d
	}
}

// Uint64 returns the next value.
func (s *XorshiftStar) Uint64() uint64 {
	x := s.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	s.state = x
	return x * 0x2545f4914f6cdd1d
}

// Uint32 returns the high half of the next 64-bit value; the low bits of
// xorshift* are the weakest.
func (s *XorshiftStar) Uint32() uint32 {
	return uint32(s.Uint64() >> 32)
}
