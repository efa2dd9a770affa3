package markov

import "fmt"

// EndText is the text representation of the end value.
const EndText = "<EOC>"

// Value is a chain value: either a concrete element or the end of a
// sequence. Values are comparable and usable as map keys. All end values are
// equal to each other and never equal to a concrete value.
type Value[T comparable] struct {
	v   T
	end bool
}

// Of wraps a concrete element.
func Of[T comparable](v T) Value[T] {
	return Value[T]{v: v}
}

// End returns the end value.
func End[T comparable]() Value[T] {
	return Value[T]{end: true}
}

// IsEnd reports whether v is the end value.
func (v Value[T]) IsEnd() bool {
	return v.end
}

// Get returns the concrete element. ok is false for the end value.
func (v Value[T]) Get() (elem T, ok bool) {
	return v.v, !v.end
}

func (v Value[T]) String() string {
	if v.end {
		return EndText
	}
	return fmt.Sprint(v.v)
}
