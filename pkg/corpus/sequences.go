package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/CTAG07/seedchain/pkg/markov"
)

// Sequence is a stored training sequence and the number of times it was
// recorded.
type Sequence struct {
	Tokens    []string
	Frequency int
}

type storedSequence struct {
	ids       []int
	frequency int
}

func (s *Store) storedSequences(ctx context.Context, set SetInfo) ([]storedSequence, error) {
	rows, err := s.stmtGetSequences.QueryContext(ctx, set.Id)
	if err != nil {
		return nil, fmt.Errorf("could not query sequences for set %d: %w", set.Id, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var stored []storedSequence
	for rows.Next() {
		var key string
		var seq storedSequence
		if err = rows.Scan(&key, &seq.frequency); err != nil {
			return nil, err
		}
		if seq.ids, err = decodeKey(key); err != nil {
			return nil, err
		}
		stored = append(stored, seq)
	}
	return stored, rows.Err()
}

// Sequences returns every sequence recorded in set, in recording order.
func (s *Store) Sequences(ctx context.Context, set SetInfo) ([]Sequence, error) {
	stored, err := s.storedSequences(ctx, set)
	if err != nil {
		return nil, err
	}
	vocab, err := s.vocabulary(ctx, nil)
	if err != nil {
		return nil, err
	}

	sequences := make([]Sequence, 0, len(stored))
	for _, st := range stored {
		tokens := make([]string, len(st.ids))
		for i, id := range st.ids {
			text, ok := vocab[id]
			if !ok {
				return nil, fmt.Errorf("consistency error: token id %d not found in vocabulary", id)
			}
			tokens[i] = text
		}
		sequences = append(sequences, Sequence{Tokens: tokens, Frequency: st.frequency})
	}
	return sequences, nil
}

// Load trains model on every sequence in set, each as many times as it was
// recorded. It returns the number of sequences trained.
func (s *Store) Load(ctx context.Context, set SetInfo, model *markov.Model[string]) (int, error) {
	sequences, err := s.Sequences(ctx, set)
	if err != nil {
		return 0, err
	}

	var trained int
	for _, seq := range sequences {
		for i := 0; i < seq.Frequency; i++ {
			model.Train(seq.Tokens)
			trained++
		}
	}

	s.logger.InfoContext(ctx, "Set loaded into model",
		slog.String("set_name", set.Name),
		slog.Int("set_id", set.Id),
		slog.Int("distinct_sequences", len(sequences)),
		slog.Int("sequences_trained", trained),
	)
	return trained, nil
}
