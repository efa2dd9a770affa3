package rng

// Source is a stateful generator of uniform unsigned 32-bit values.
// Implementations are not required to be safe for concurrent use.
type Source interface {
	// Uint32 returns the next value, uniform over the full 32-bit domain.
	Uint32() uint32
}

// Source64 is a Source that can also produce 64-bit values natively.
type Source64 interface {
	Source
	// Uint64 returns the next value, uniform over the full 64-bit domain.
	Uint64() uint64
}

// Uint64 returns a uniform 64-bit sample from src. Sources without a native
// 64-bit output have two 32-bit samples concatenated, high word first.
func Uint64(src Source) uint64 {
	if s, ok := src.(Source64); ok {
		return s.Uint64()
	}
	hi := uint64(src.Uint32())
	lo := uint64(src.Uint32())
	return hi<<32 | lo
}
