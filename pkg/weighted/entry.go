package weighted

import (
	"cmp"
	"fmt"
	"math"
)

// Entry is a value together with its selection weight.
type Entry[T comparable] struct {
	Value  T
	Weight float64
}

// Equal reports whether both the value and the weight of e and o are equal.
func (e Entry[T]) Equal(o Entry[T]) bool {
	return e.Value == o.Value && e.Weight == o.Weight
}

// String formats the entry as value:weight.
func (e Entry[T]) String() string {
	return fmt.Sprintf("%v:%g", e.Value, e.Weight)
}

// Compare orders entries by weight, then by value.
func Compare[T cmp.Ordered](a, b Entry[T]) int {
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// CompareFunc orders entries by weight, then by value using valueCmp.
func CompareFunc[T comparable](a, b Entry[T], valueCmp func(T, T) int) int {
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	return valueCmp(a.Value, b.Value)
}

func validateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}
	return nil
}
