package corpus

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
)

func TestPruneSet(t *testing.T) {
	_, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()
	set, _ := s.InsertSet(ctx, "prune_test")
	_, _ = s.Train(ctx, set, strings.NewReader("a b. a b. c d."))

	removed, err := s.PruneSet(ctx, set, 1)
	if err != nil {
		t.Fatalf("PruneSet failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("PruneSet removed %d sequences, want 1", removed)
	}
	seqs, _ := s.Sequences(ctx, set)
	if len(seqs) != 1 || seqs[0].Frequency != 2 {
		t.Errorf("remaining sequences = %+v, want [a b]x2", seqs)
	}
}

func TestVocabularyPrune(t *testing.T) {
	db, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()
	set, _ := s.InsertSet(ctx, "prune_vocab_test")
	_, _ = s.Train(ctx, set, strings.NewReader("a b. a b. a c. d e."))

	// a is used 3 times, b twice, c, d and e once.
	if err := s.VocabularyPrune(ctx, 2); err != nil {
		t.Fatalf("VocabularyPrune failed: %v", err)
	}

	for _, word := range []string{"c", "d", "e"} {
		if _, err := s.VocabStr(ctx, word); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("token '%s' should have been pruned but was found", word)
		}
	}
	for _, word := range []string{"a", "b"} {
		if _, err := s.VocabStr(ctx, word); err != nil {
			t.Errorf("token '%s' should not have been pruned but was: %v", word, err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_sequences").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected only [a b] to survive, found %d sequences", count)
	}
}

func TestVocabularyPruneNothing(t *testing.T) {
	ctx, s, set := setupTestDBWithTraining(t)
	before, _ := s.Sequences(ctx, set)
	if err := s.VocabularyPrune(ctx, 1); err != nil {
		t.Fatalf("VocabularyPrune failed: %v", err)
	}
	after, _ := s.Sequences(ctx, set)
	if len(after) != len(before) {
		t.Errorf("VocabularyPrune(1) removed sequences: %d -> %d", len(before), len(after))
	}
}
