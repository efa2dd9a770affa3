package rng

import (
	"fmt"
	"math"
	"math/bits"
)

// space32 is the size of the 32-bit sample space.
const space32 = uint64(1) << 32

// scale32 maps a 32-bit sample onto [0, length). length must be in [1, 2^32].
func scale32(sample uint32, length uint64) uint32 {
	if length == space32 {
		return sample
	}
	// sample < 2^32 and length < 2^32, so the product fits in 64 bits.
	return uint32((uint64(sample) * length) >> 32)
}

// scale64 maps a 64-bit sample onto [0, length) using the high word of the
// 128-bit product sample*length.
func scale64(sample, length uint64) uint64 {
	hi, _ := bits.Mul64(sample, length)
	return hi
}

// Uint32Range returns a value uniformly distributed over [min, max).
// If min == max the result is min and no sample is drawn.
func Uint32Range(src Source, min, max uint32) (uint32, error) {
	if src == nil {
		return 0, ErrNilSource
	}
	if max < min {
		return 0, fmt.Errorf("%w: max %d is less than min %d", ErrInvalidRange, max, min)
	}
	if max == min {
		return min, nil
	}
	return min + scale32(src.Uint32(), uint64(max-min)), nil
}

// Int32Range returns a value uniformly distributed over [min, max).
// If min == max the result is min and no sample is drawn.
func Int32Range(src Source, min, max int32) (int32, error) {
	if src == nil {
		return 0, ErrNilSource
	}
	if max < min {
		return 0, fmt.Errorf("%w: max %d is less than min %d", ErrInvalidRange, max, min)
	}
	if max == min {
		return min, nil
	}
	length := uint64(int64(max) - int64(min))
	// Two's complement wrap-around puts the offset back into the signed domain.
	return int32(uint32(min) + scale32(src.Uint32(), length)), nil
}

// Uint64Range returns a value uniformly distributed over [min, max).
// If min == max the result is min and no sample is drawn.
func Uint64Range(src Source, min, max uint64) (uint64, error) {
	if src == nil {
		return 0, ErrNilSource
	}
	if max < min {
		return 0, fmt.Errorf("%w: max %d is less than min %d", ErrInvalidRange, max, min)
	}
	if max == min {
		return min, nil
	}
	return min + scale64(Uint64(src), max-min), nil
}

// Int64Range returns a value uniformly distributed over [min, max).
// If min == max the result is min and no sample is drawn.
func Int64Range(src Source, min, max int64) (int64, error) {
	if src == nil {
		return 0, ErrNilSource
	}
	if max < min {
		return 0, fmt.Errorf("%w: max %d is less than min %d", ErrInvalidRange, max, min)
	}
	if max == min {
		return min, nil
	}
	length := uint64(max) - uint64(min)
	return int64(uint64(min) + scale64(Uint64(src), length)), nil
}

// Intn returns a value uniformly distributed over [0, n). n must be positive.
func Intn(src Source, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidRange, n)
	}
	v, err := Int64Range(src, 0, int64(n))
	return int(v), err
}

// Float64 returns a value uniformly distributed over [0, 1) with 53 bits of
// precision. src must not be nil.
func Float64(src Source) float64 {
	return float64(scale64(Uint64(src), 1<<53)) / (1 << 53)
}

// Float64Range returns a value uniformly distributed over [0, limit).
// limit must be finite and positive.
func Float64Range(src Source, limit float64) (float64, error) {
	if src == nil {
		return 0, ErrNilSource
	}
	if !(limit > 0) || math.IsInf(limit, 1) {
		return 0, fmt.Errorf("%w: limit must be finite and positive, got %v", ErrInvalidRange, limit)
	}
	return Float64(src) * limit, nil
}
