package markov

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/CTAG07/seedchain/pkg/rng"
	"github.com/CTAG07/seedchain/pkg/weighted"
)

// endIndex is the node index reserved for the end value.
const endIndex = 0

var (
	// ErrUntrained is returned by generation calls made before any sequence
	// has been trained.
	ErrUntrained = errors.New("markov: model has not been trained")
	// ErrNegativeLength is returned for a negative requested length.
	ErrNegativeLength = errors.New("markov: negative length")
)

// node is one chain value with its outgoing transitions. next holds every
// successor node index weighted by how often it followed this value; nonEnd
// holds the same entries in the same order with the end node's weight held
// at zero.
type node[T comparable] struct {
	value  Value[T]
	next   *weighted.List[int]
	nonEnd *weighted.List[int]
}

func newNode[T comparable](value Value[T]) *node[T] {
	return &node[T]{
		value:  value,
		next:   &weighted.List[int]{},
		nonEnd: &weighted.List[int]{},
	}
}

// Model is a weighted transition graph trained from example sequences.
// Every exported method holds the model's lock for its whole duration, so a
// Model may be trained and sampled from concurrently.
type Model[T comparable] struct {
	mu    sync.Mutex
	nodes []*node[T]
	index map[Value[T]]int

	// items weights every value by its number of occurrences. firsts
	// weights values by how often they started a sequence. The nonEnd
	// variants mirror them with the end value's weight held at zero.
	items        *weighted.List[Value[T]]
	itemsNonEnd  *weighted.List[Value[T]]
	firsts       *weighted.List[Value[T]]
	firstsNonEnd *weighted.List[Value[T]]
	lengths      *weighted.List[int]

	sequences int
	logger    *slog.Logger
}

// New returns an empty, untrained model.
func New[T comparable]() *Model[T] {
	end := End[T]()
	return &Model[T]{
		nodes:        []*node[T]{newNode(end)},
		index:        map[Value[T]]int{end: endIndex},
		items:        &weighted.List[Value[T]]{},
		itemsNonEnd:  &weighted.List[Value[T]]{},
		firsts:       &weighted.List[Value[T]]{},
		firstsNonEnd: &weighted.List[Value[T]]{},
		lengths:      &weighted.List[int]{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the model. By default, all logs are discarded.
func (m *Model[T]) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// Trained reports whether at least one sequence has been trained.
func (m *Model[T]) Trained() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sequences > 0
}

// Items returns a snapshot of the per-value occurrence weights, including
// the end value.
func (m *Model[T]) Items() weighted.View[Value[T]] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items.Clone().View()
}

// Firsts returns a snapshot of the sequence-start weights.
func (m *Model[T]) Firsts() weighted.View[Value[T]] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.firsts.Clone().View()
}

// Lengths returns a snapshot of the observed sequence-length weights.
func (m *Model[T]) Lengths() weighted.View[int] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lengths.Clone().View()
}

// Successors returns a snapshot of the transitions out of value. ok is false
// if value has never been trained.
func (m *Model[T]) Successors(value Value[T]) (view weighted.View[Value[T]], ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[value]
	if !ok {
		return weighted.View[Value[T]]{}, false
	}
	n := m.nodes[i]
	list, _ := weighted.NewWithCapacity[Value[T]](n.next.Len())
	for _, e := range n.next.Entries() {
		_, _ = list.Add(m.nodes[e.Value].value, e.Weight)
	}
	return list.View(), true
}

// ready validates the preconditions shared by every generation call.
// m.mu must be held.
func (m *Model[T]) ready(src rng.Source) error {
	if m.sequences == 0 {
		return ErrUntrained
	}
	if src == nil {
		return rng.ErrNilSource
	}
	return nil
}
