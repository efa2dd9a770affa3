package markov

import (
	"fmt"
	"log/slog"

	"github.com/CTAG07/seedchain/pkg/rng"
)

// GenerateAnyLength walks the chain from a start value until the end value is
// drawn and returns every value visited. With strict set, the walk starts
// from a value that began some training sequence; otherwise it starts from
// any trained value, weighted by occurrence. The result never contains the
// end value and may be empty.
func (m *Model[T]) GenerateAnyLength(src rng.Source, strict bool) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ready(src); err != nil {
		return nil, err
	}

	start := m.items
	if strict {
		start = m.firsts
	}
	value, err := start.RandomValue(src)
	if err != nil {
		return nil, fmt.Errorf("could not draw start value: %w", err)
	}

	var out []T
	cur := m.index[value]
	for cur != endIndex {
		n := m.nodes[cur]
		out = append(out, n.value.v)
		if cur, err = n.next.RandomValue(src); err != nil {
			return nil, fmt.Errorf("could not draw successor of %v: %w", n.value, err)
		}
	}

	m.logger.Debug("Generation terminated by end value",
		slog.Bool("strict_start", strict),
		slog.Int("generated_length", len(out)),
	)
	return out, nil
}

// GenerateFixedLength returns exactly length values. The walk never draws
// the end value: when the current value has no successor other than the end,
// the walk restarts from any trained value, weighted by occurrence. A length
// of 0 returns an empty result without drawing from src.
func (m *Model[T]) GenerateFixedLength(src rng.Source, length int, strict bool) ([]T, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ready(src); err != nil {
		return nil, err
	}
	return m.walkFixed(src, length, strict)
}

// GenerateExistingLength draws a length from the observed training-sequence
// lengths and then behaves as GenerateFixedLength.
func (m *Model[T]) GenerateExistingLength(src rng.Source, strict bool) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ready(src); err != nil {
		return nil, err
	}
	length, err := m.lengths.RandomValue(src)
	if err != nil {
		return nil, fmt.Errorf("could not draw length: %w", err)
	}
	return m.walkFixed(src, length, strict)
}

// walkFixed implements fixed-length generation. m.mu must be held.
func (m *Model[T]) walkFixed(src rng.Source, length int, strict bool) ([]T, error) {
	out := make([]T, 0, length)
	if length == 0 {
		return out, nil
	}

	start := m.itemsNonEnd
	if strict {
		start = m.firstsNonEnd
	}
	value, err := start.RandomValue(src)
	if err != nil {
		return nil, fmt.Errorf("could not draw start value: %w", err)
	}

	cur := m.index[value]
	out = append(out, m.nodes[cur].value.v)
	restarts := 0
	for len(out) < length {
		n := m.nodes[cur]
		if n.nonEnd.TotalWeight() > 0 {
			if cur, err = n.nonEnd.RandomValue(src); err != nil {
				return nil, fmt.Errorf("could not draw successor of %v: %w", n.value, err)
			}
		} else {
			// Dead end: the only way out of this value is the end.
			if value, err = m.itemsNonEnd.RandomValue(src); err != nil {
				return nil, fmt.Errorf("could not restart after %v: %w", n.value, err)
			}
			cur = m.index[value]
			restarts++
			m.logger.Debug("Generation restarted after dead end",
				slog.String("last_value", n.value.String()),
				slog.Int("generated_length", len(out)),
			)
		}
		out = append(out, m.nodes[cur].value.v)
	}

	m.logger.Debug("Generation terminated by reaching length",
		slog.Bool("strict_start", strict),
		slog.Int("length", length),
		slog.Int("restarts", restarts),
	)
	return out, nil
}
