// Package source provides interchangeable sample sources implementing
// rng.Source. None of them is suitable for cryptographic use except Crypto.
package source
