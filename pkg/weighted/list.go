package weighted

import (
	"fmt"
	"math"
	"slices"

	"github.com/CTAG07/seedchain/pkg/rng"
)

// List is an ordered collection of weighted entries. Insertion order defines
// the index of each entry, and duplicate values are kept as distinct entries.
// The zero value is an empty list ready to use.
type List[T comparable] struct {
	entries []Entry[T]
}

// New returns a list holding entries in order. Every weight, and the total
// weight, is validated before the list is built.
func New[T comparable](entries ...Entry[T]) (*List[T], error) {
	var total float64
	for i, e := range entries {
		if err := validateWeight(e.Weight); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if total += e.Weight; math.IsInf(total, 0) {
			return nil, fmt.Errorf("entry %d: %w", i, errTotalOverflow)
		}
	}
	return &List[T]{entries: slices.Clone(entries)}, nil
}

// NewWithCapacity returns an empty list with room for capacity entries.
func NewWithCapacity[T comparable](capacity int) (*List[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &List[T]{entries: make([]Entry[T], 0, capacity)}, nil
}

// Len returns the number of entries, including zero-weight entries.
func (l *List[T]) Len() int {
	return len(l.entries)
}

// Cap returns the number of entries the list can hold without growing.
func (l *List[T]) Cap() int {
	return cap(l.entries)
}

// Grow ensures room for at least n more entries.
func (l *List[T]) Grow(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: cannot grow by %d", ErrInvalidCapacity, n)
	}
	l.entries = slices.Grow(l.entries, n)
	return nil
}

// TrimExcess releases unused capacity.
func (l *List[T]) TrimExcess() {
	l.entries = slices.Clip(l.entries)
}

// Clear removes all entries.
func (l *List[T]) Clear() {
	l.entries = l.entries[:0]
}

// checkTotal rejects replacing a weight of from with to when the total
// weight of the list would no longer be finite.
func (l *List[T]) checkTotal(from, to float64) error {
	if total := l.TotalWeight() - from + to; math.IsInf(total, 0) {
		return errTotalOverflow
	}
	return nil
}

func (l *List[T]) checkIndex(index int) error {
	if index < 0 || index >= len(l.entries) {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(l.entries))
	}
	return nil
}

// At returns the entry at index.
func (l *List[T]) At(index int) (Entry[T], error) {
	if err := l.checkIndex(index); err != nil {
		return Entry[T]{}, err
	}
	return l.entries[index], nil
}

// Entries returns a copy of all entries in index order.
func (l *List[T]) Entries() []Entry[T] {
	return slices.Clone(l.entries)
}

// Add appends a new entry and returns its index.
func (l *List[T]) Add(value T, weight float64) (int, error) {
	if err := validateWeight(weight); err != nil {
		return -1, err
	}
	if err := l.checkTotal(0, weight); err != nil {
		return -1, err
	}
	l.entries = append(l.entries, Entry[T]{Value: value, Weight: weight})
	return len(l.entries) - 1, nil
}

// Insert places a new entry at index, shifting later entries up by one.
// index may equal Len to append.
func (l *List[T]) Insert(index int, value T, weight float64) error {
	if index < 0 || index > len(l.entries) {
		return fmt.Errorf("%w: insert at %d, length %d", ErrIndexOutOfRange, index, len(l.entries))
	}
	if err := validateWeight(weight); err != nil {
		return err
	}
	if err := l.checkTotal(0, weight); err != nil {
		return err
	}
	l.entries = slices.Insert(l.entries, index, Entry[T]{Value: value, Weight: weight})
	return nil
}

// RemoveAt deletes the entry at index, shifting later entries down by one.
func (l *List[T]) RemoveAt(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.entries = slices.Delete(l.entries, index, index+1)
	return nil
}

// SetAt replaces the entry at index.
func (l *List[T]) SetAt(index int, entry Entry[T]) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if err := validateWeight(entry.Weight); err != nil {
		return err
	}
	if err := l.checkTotal(l.entries[index].Weight, entry.Weight); err != nil {
		return err
	}
	l.entries[index] = entry
	return nil
}

// SetPriorityAt replaces the weight of the entry at index.
func (l *List[T]) SetPriorityAt(index int, weight float64) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	if err := validateWeight(weight); err != nil {
		return err
	}
	if err := l.checkTotal(l.entries[index].Weight, weight); err != nil {
		return err
	}
	l.entries[index] = Entry[T]{Value: l.entries[index].Value, Weight: weight}
	return nil
}

// SetValueAt replaces the value of the entry at index, keeping its weight.
func (l *List[T]) SetValueAt(index int, value T) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.entries[index] = Entry[T]{Value: value, Weight: l.entries[index].Weight}
	return nil
}

// Accumulate adds delta to the weight of the first entry holding value,
// appending a new entry with weight delta if there is none. It returns the
// index of the entry.
func (l *List[T]) Accumulate(value T, delta float64) (int, error) {
	if err := validateWeight(delta); err != nil {
		return -1, err
	}
	i := l.IndexOf(value)
	if i < 0 {
		if err := l.checkTotal(0, delta); err != nil {
			return -1, err
		}
		l.entries = append(l.entries, Entry[T]{Value: value, Weight: delta})
		return len(l.entries) - 1, nil
	}
	w := l.entries[i].Weight + delta
	if err := validateWeight(w); err != nil {
		return -1, err
	}
	if err := l.checkTotal(l.entries[i].Weight, w); err != nil {
		return -1, err
	}
	l.entries[i] = Entry[T]{Value: value, Weight: w}
	return i, nil
}

// IndexOf returns the index of the first entry holding value, or -1.
func (l *List[T]) IndexOf(value T) int {
	for i, e := range l.entries {
		if e.Value == value {
			return i
		}
	}
	return -1
}

// IndexOfEntry returns the index of the first entry equal to (value, weight),
// or -1.
func (l *List[T]) IndexOfEntry(value T, weight float64) int {
	target := Entry[T]{Value: value, Weight: weight}
	for i, e := range l.entries {
		if e.Equal(target) {
			return i
		}
	}
	return -1
}

// Contains reports whether any entry holds value.
func (l *List[T]) Contains(value T) bool {
	return l.IndexOf(value) >= 0
}

// ContainsEntry reports whether any entry equals (value, weight).
func (l *List[T]) ContainsEntry(value T, weight float64) bool {
	return l.IndexOfEntry(value, weight) >= 0
}

// FindIndex returns the index of the first entry satisfying match, or -1.
func (l *List[T]) FindIndex(match func(Entry[T]) bool) int {
	return slices.IndexFunc(l.entries, match)
}

// Find returns the first entry satisfying match.
func (l *List[T]) Find(match func(Entry[T]) bool) (Entry[T], bool) {
	if i := l.FindIndex(match); i >= 0 {
		return l.entries[i], true
	}
	return Entry[T]{}, false
}

// FindAll returns every entry satisfying match, in index order.
func (l *List[T]) FindAll(match func(Entry[T]) bool) []Entry[T] {
	var found []Entry[T]
	for _, e := range l.entries {
		if match(e) {
			found = append(found, e)
		}
	}
	return found
}

// TotalWeight returns the sum of all positive weights.
func (l *List[T]) TotalWeight() float64 {
	var total float64
	for _, e := range l.entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// RandomIndex draws one index with probability proportional to its weight.
// It returns ErrEmpty when no entry has a positive weight.
func (l *List[T]) RandomIndex(src rng.Source) (int, error) {
	if src == nil {
		return -1, rng.ErrNilSource
	}
	total := l.TotalWeight()
	if total <= 0 {
		return -1, fmt.Errorf("%w: %d entries, total weight 0", ErrEmpty, len(l.entries))
	}

	u := rng.Float64(src) * total
	var cumulative float64
	last := -1
	for i, e := range l.entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		last = i
		if u < cumulative {
			return i, nil
		}
	}
	// Rounding in the running sum can leave u just past the final bound.
	return last, nil
}

// RandomValue returns the value at RandomIndex.
func (l *List[T]) RandomValue(src rng.Source) (T, error) {
	i, err := l.RandomIndex(src)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.entries[i].Value, nil
}

// Clone returns an independent copy of the list.
func (l *List[T]) Clone() *List[T] {
	return &List[T]{entries: slices.Clone(l.entries)}
}

// View returns a read-only view backed by l. Changes to l are visible
// through the view.
func (l *List[T]) View() View[T] {
	return View[T]{list: l}
}
