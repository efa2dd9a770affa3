package source

import (
	"errors"
	"fmt"
	"sort"

	"github.com/CTAG07/seedchain/pkg/rng"
)

// ErrUnknownSource is returned by New for an unregistered source name.
var ErrUnknownSource = errors.New("source: unknown source")

const (
	NameXorshift     = "xorshift"
	NameXorshiftStar = "xorshift-star"
	NameCMWC         = "cmwc"
	NameMT19937      = "mt19937"
	NameWichmannHill = "wichmann-hill"
	NameCrypto       = "crypto"
)

var constructors = map[string]func(seed uint64) rng.Source{
	NameXorshift:     func(seed uint64) rng.Source { return NewXorshift(seed) },
	NameXorshiftStar: func(seed uint64) rng.Source { return NewXorshiftStar(seed) },
	NameCMWC:         func(seed uint64) rng.Source { return NewCMWC(seed) },
	NameMT19937:      func(seed uint64) rng.Source { return NewMT19937(seed) },
	NameWichmannHill: func(seed uint64) rng.Source { return NewWichmannHill(seed) },
	NameCrypto:       func(uint64) rng.Source { return Crypto{} },
}

// New returns the named source seeded with seed. The crypto source ignores
// the seed.
func New(name string, seed uint64) (rng.Source, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return ctor(seed), nil
}

// Names returns the registered source names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
