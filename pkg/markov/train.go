package markov

import (
	"log/slog"

	"github.com/CTAG07/seedchain/pkg/weighted"
)

// Train adds one sequence to the model. Every value's occurrence weight, the
// start weight of its first value, each transition along the sequence, the
// transition from its last value to the end, and the weight of its length all
// grow by one. Training the same sequence again sharpens these weights
// rather than growing the graph. A nil or empty sequence counts as a sequence
// that ends immediately.
func (m *Model[T]) Train(sequence []T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	end := End[T]()
	if len(sequence) == 0 {
		bump(m.items, m.itemsNonEnd, end)
		bump(m.firsts, m.firstsNonEnd, end)
	} else {
		// The end value is reachable from every trained sequence, so it is
		// listed among the items even before an empty sequence is seen.
		touch(m.items, m.itemsNonEnd, end)

		prev := endIndex
		for i, elem := range sequence {
			value := Of(elem)
			cur := m.nodeFor(value)
			bump(m.items, m.itemsNonEnd, value)
			if i == 0 {
				bump(m.firsts, m.firstsNonEnd, value)
			} else {
				m.link(prev, cur)
			}
			prev = cur
		}
		m.link(prev, endIndex)
	}

	_, _ = m.lengths.Accumulate(len(sequence), 1)
	m.sequences++

	m.logger.Debug("Sequence trained",
		slog.Int("sequence_length", len(sequence)),
		slog.Int("sequences_trained", m.sequences),
		slog.Int("nodes", len(m.nodes)),
	)
}

// nodeFor returns the node index of value, creating the node on first sight.
func (m *Model[T]) nodeFor(value Value[T]) int {
	if i, ok := m.index[value]; ok {
		return i
	}
	m.nodes = append(m.nodes, newNode(value))
	i := len(m.nodes) - 1
	m.index[value] = i
	return i
}

// link records one transition from node from to node to.
func (m *Model[T]) link(from, to int) {
	n := m.nodes[from]
	_, _ = n.next.Accumulate(to, 1)
	if to == endIndex {
		_, _ = n.nonEnd.Accumulate(to, 0)
	} else {
		_, _ = n.nonEnd.Accumulate(to, 1)
	}
}

// bump adds one occurrence of value to a table and its non-end mirror.
// Accumulate only fails for invalid deltas, and the deltas here are constant.
func bump[T comparable](all, nonEnd *weighted.List[Value[T]], value Value[T]) {
	_, _ = all.Accumulate(value, 1)
	if value.IsEnd() {
		_, _ = nonEnd.Accumulate(value, 0)
	} else {
		_, _ = nonEnd.Accumulate(value, 1)
	}
}

// touch makes sure value is listed in a table and its mirror without adding
// weight.
func touch[T comparable](all, nonEnd *weighted.List[Value[T]], value Value[T]) {
	_, _ = all.Accumulate(value, 0)
	_, _ = nonEnd.Accumulate(value, 0)
}
