package source

import "github.com/CTAG07/seedchain/pkg/rng"

const (
	cmwcLag        = 4096
	cmwcMultiplier = 18782
	cmwcInitCarry  = 362436
	cmwcR          = 0xfffffffe
)

// CMWC is Marsaglia's complementary-multiply-with-carry generator with a lag
// of 4096.
type CMWC struct {
	q [cmwcLag]uint32
	c uint32
	i uint32
}

var _ rng.Source = (*CMWC)(nil)

// NewCMWC returns a CMWC seeded from seed.
func NewCMWC(seed uint64) *CMWC {
	s := &CMWC{}
	s.Seed(seed)
	return s
}

// Seed fills the lag table from seed and resets the carry.
func (s *CMWC) Seed(seed uint64) {
	state := seed
	for i := 0; i < cmwcLag; i += 2 {
		v := rng.SplitMix64(&state)
		s.q[i] = uint32(v >> 32)
		s.q[i+1] = uint32(v)
	}
	s.c = cmwcInitCarry
	s.i = cmwcLag - 1
}

// Uint32 returns the next value.
func (s *CMWC) Uint32() uint32 {
	s.i = (s.i + 1) & (cmwcLag - 1)
	t := uint64(cmwcMultiplier)*uint64(s.q[s.i]) + uint64(s.c)
	s.c = uint32(t >> 32)
	x := uint32(t) + s.c
	if x < s.c {
		x++
		s.c++
	}
	s.q[s.i] = cmwcR - x
	return s.q[s.i]
}
