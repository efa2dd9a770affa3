package markov

// Stats holds aggregated statistics for a model.
type Stats struct {
	Sequences   int     // The number of sequences trained, including empty ones.
	Values      int     // The number of distinct concrete values.
	Transitions int     // The number of distinct value->value links, including links to the end.
	Frequency   float64 // The sum of all transition weights.
	Starts      int     // The number of distinct values that began a sequence.
	Lengths     int     // The number of distinct sequence lengths observed.
}

// Stats returns a snapshot of the model's statistics.
func (m *Model[T]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Sequences: m.sequences,
		Values:    len(m.nodes) - 1,
		Lengths:   m.lengths.Len(),
	}
	for _, n := range m.nodes {
		s.Transitions += n.next.Len()
		s.Frequency += n.next.TotalWeight()
	}
	for _, e := range m.firsts.Entries() {
		if !e.Value.IsEnd() {
			s.Starts++
		}
	}
	return s
}
