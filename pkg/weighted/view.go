package weighted

import "github.com/CTAG07/seedchain/pkg/rng"

// View is a read-only window onto a List. The zero View is empty.
type View[T comparable] struct {
	list *List[T]
}

func (v View[T]) l() *List[T] {
	if v.list == nil {
		return &List[T]{}
	}
	return v.list
}

// Len returns the number of entries.
func (v View[T]) Len() int { return v.l().Len() }

// At returns the entry at index.
func (v View[T]) At(index int) (Entry[T], error) { return v.l().At(index) }

// Entries returns a copy of all entries in index order.
func (v View[T]) Entries() []Entry[T] { return v.l().Entries() }

// IndexOf returns the index of the first entry holding value, or -1.
func (v View[T]) IndexOf(value T) int { return v.l().IndexOf(value) }

// IndexOfEntry returns the index of the first entry equal to (value, weight), or -1.
func (v View[T]) IndexOfEntry(value T, weight float64) int {
	return v.l().IndexOfEntry(value, weight)
}

// Contains reports whether any entry holds value.
func (v View[T]) Contains(value T) bool { return v.l().Contains(value) }

// ContainsEntry reports whether any entry equals (value, weight).
func (v View[T]) ContainsEntry(value T, weight float64) bool {
	return v.l().ContainsEntry(value, weight)
}

// FindIndex returns the index of the first entry satisfying match, or -1.
func (v View[T]) FindIndex(match func(Entry[T]) bool) int { return v.l().FindIndex(match) }

// Find returns the first entry satisfying match.
func (v View[T]) Find(match func(Entry[T]) bool) (Entry[T], bool) { return v.l().Find(match) }

// FindAll returns every entry satisfying match.
func (v View[T]) FindAll(match func(Entry[T]) bool) []Entry[T] { return v.l().FindAll(match) }

// TotalWeight returns the sum of all positive weights.
func (v View[T]) TotalWeight() float64 { return v.l().TotalWeight() }

// RandomIndex draws one index with probability proportional to its weight.
func (v View[T]) RandomIndex(src rng.Source) (int, error) { return v.l().RandomIndex(src) }

// RandomValue returns the value at RandomIndex.
func (v View[T]) RandomValue(src rng.Source) (T, error) { return v.l().RandomValue(src) }
