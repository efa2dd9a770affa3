package corpus

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new SQLite database and a Store for testing.
func setupTestDB(tb testing.TB, tokenizer Tokenizer) (*sql.DB, *Store) {
	tb.Helper()
	dbFile := filepath.Join(tb.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		tb.Fatalf("failed to set up schema: %v", err)
	}
	// SetupSchema must be idempotent.
	if err := SetupSchema(db); err != nil {
		tb.Fatalf("second SetupSchema failed: %v", err)
	}

	s, err := NewStore(db, tokenizer)
	if err != nil {
		tb.Fatalf("NewStore() error = %v", err)
	}
	tb.Cleanup(s.Close)
	return db, s
}

// setupTestDBWithTraining also records a small word corpus in a set.
func setupTestDBWithTraining(t *testing.T) (context.Context, *Store, SetInfo) {
	t.Helper()
	_, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()

	set, err := s.InsertSet(ctx, "test_set")
	if err != nil {
		t.Fatalf("setup: InsertSet() failed: %v", err)
	}
	n, err := s.Train(ctx, set, strings.NewReader("one fish two fish. red fish blue fish. one fish two fish."))
	if err != nil {
		t.Fatalf("setup: Train() failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("setup: Train() recorded %d sequences, want 3", n)
	}
	return ctx, s, set
}
