package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// MaxSequenceLength caps the number of tokens recorded for one sequence.
// Tokens past the cap are dropped until the next sequence end.
const MaxSequenceLength = 4096

// AddSequence records one sequence of tokens in set. Recording an identical
// sequence again increments its frequency. An empty sequence is recorded as
// a sequence that ends immediately.
func (s *Store) AddSequence(ctx context.Context, set SetInfo, tokens []string) error {
	if len(tokens) > MaxSequenceLength {
		return fmt.Errorf("sequence of %d tokens exceeds maximum of %d", len(tokens), MaxSequenceLength)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	w := s.newSequenceWriter(ctx, tx, set)
	ids := make([]int, 0, len(tokens))
	for _, text := range tokens {
		id, err := w.tokenID(text)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err = w.write(ids); err != nil {
		return err
	}
	return tx.Commit()
}

// Train tokenizes data with the Store's tokenizer and records every sequence
// it contains in set, splitting at EOC tokens. Empty sequences between
// consecutive EOC tokens are skipped. The whole stream is recorded in a
// single transaction. Train returns the number of sequences recorded.
func (s *Store) Train(ctx context.Context, set SetInfo, data io.Reader) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	w := s.newSequenceWriter(ctx, tx, set)
	stream := s.tokenizer.NewStream(data)
	var current []int
	var count, truncated int

	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		if err := w.write(current); err != nil {
			return fmt.Errorf("sequence processing error: %w", err)
		}
		count++
		current = current[:0]
		return nil
	}

	for {
		if err = ctx.Err(); err != nil {
			return 0, err
		}
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("tokenizer error: %w", err)
		}

		if token.EOC {
			if err = flush(); err != nil {
				return 0, err
			}
			continue
		}
		if len(current) >= MaxSequenceLength {
			truncated++
			continue
		}
		id, err := w.tokenID(token.Text)
		if err != nil {
			return 0, err
		}
		current = append(current, id)
	}
	if err = flush(); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "Training completed",
		slog.String("set_name", set.Name),
		slog.Int("set_id", set.Id),
		slog.Int("sequences_processed", count),
		slog.Int("tokens_truncated", truncated),
	)

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// sequenceWriter records sequences within one transaction, caching
// vocabulary lookups.
type sequenceWriter struct {
	ctx         context.Context
	set         SetInfo
	insertVocab *sql.Stmt
	insertSeq   *sql.Stmt
	vocabCache  map[string]int
	keyBuf      []byte
}

func (s *Store) newSequenceWriter(ctx context.Context, tx *sql.Tx, set SetInfo) *sequenceWriter {
	return &sequenceWriter{
		ctx:         ctx,
		set:         set,
		insertVocab: tx.StmtContext(ctx, s.stmtInsertVocab),
		insertSeq:   tx.StmtContext(ctx, s.stmtInsertSequence),
		vocabCache:  make(map[string]int),
	}
}

func (w *sequenceWriter) tokenID(text string) (int, error) {
	if id, ok := w.vocabCache[text]; ok {
		return id, nil
	}
	var id int
	if err := w.insertVocab.QueryRowContext(w.ctx, text).Scan(&id); err != nil {
		return 0, fmt.Errorf("sql insert vocabulary error for token %q: %w", text, err)
	}
	w.vocabCache[text] = id
	return id, nil
}

func (w *sequenceWriter) write(ids []int) error {
	w.keyBuf = appendKey(w.keyBuf[:0], ids)
	key := string(w.keyBuf)
	if _, err := w.insertSeq.ExecContext(w.ctx, w.set.Id, key, len(ids), 1); err != nil {
		return fmt.Errorf("failed to insert sequence %q: %w", key, err)
	}
	return nil
}
