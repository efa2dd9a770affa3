package source

import (
	crand "crypto/rand"
	"encoding/binary"

	"github.com/CTAG07/seedchain/pkg/rng"
)

// Crypto draws samples from crypto/rand. It has no state to seed and its
// output is not reproducible.
type Crypto struct{}

var _ rng.Source64 = Crypto{}

// Uint32 returns 32 bits from the system CSPRNG.
func (Crypto) Uint32() uint32 {
	var b [4]byte
	// crypto/rand.Read never returns an error; it crashes the program if the
	// system generator is unavailable.
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Uint64 returns 64 bits from the system CSPRNG.
func (Crypto) Uint64() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
