package corpus

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrSetNotFound is returned when a named corpus set does not exist.
var ErrSetNotFound = errors.New("corpus: set not found")

// SetupSchema initializes the corpus tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaVocab = `
CREATE TABLE IF NOT EXISTS corpus_vocabulary (
    token_id INTEGER PRIMARY KEY,
    token_text TEXT NOT NULL UNIQUE
);
`
		schemaSets = `
CREATE TABLE IF NOT EXISTS corpus_sets (
    set_id INTEGER PRIMARY KEY,
    set_name TEXT NOT NULL UNIQUE
);
`
		schemaSequences = `
CREATE TABLE IF NOT EXISTS corpus_sequences (
    set_id INTEGER NOT NULL,
    seq_key TEXT NOT NULL,
    seq_length INTEGER NOT NULL,
    frequency INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (set_id, seq_key)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	for _, schema := range []string{schemaVocab, schemaSets, schemaSequences} {
		if _, err = tx.Exec(schema); err != nil {
			return fmt.Errorf("could not create schema: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store records tokenized training sequences in named sets and replays them
// into in-memory models. It holds the database connection, a tokenizer, and
// prepared statements.
type Store struct {
	db                 *sql.DB
	tokenizer          Tokenizer
	stmtGetSetInfo     *sql.Stmt
	stmtGetSets        *sql.Stmt
	stmtAddSet         *sql.Stmt
	stmtInsertVocab    *sql.Stmt
	stmtGetTokenID     *sql.Stmt
	stmtGetTokenText   *sql.Stmt
	stmtGetVocab       *sql.Stmt
	stmtGetVocabLen    *sql.Stmt
	stmtInsertSequence *sql.Stmt
	stmtGetSequences   *sql.Stmt
	stmtSetCounts      *sql.Stmt
	stmtPruneSet       *sql.Stmt
	logger             *slog.Logger
}

// NewStore creates a Store over db. SetupSchema must have been called on db.
func NewStore(db *sql.DB, tokenizer Tokenizer) (*Store, error) {
	s := &Store{
		db:        db,
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	statements := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.stmtGetSetInfo, `SELECT set_id FROM corpus_sets WHERE set_name = ?;`},
		{&s.stmtGetSets, `SELECT set_id, set_name FROM corpus_sets ORDER BY set_id;`},
		{&s.stmtAddSet, `INSERT INTO corpus_sets (set_name) VALUES (?);`},
		{&s.stmtInsertVocab, `INSERT INTO corpus_vocabulary (token_text) VALUES (?) ON CONFLICT(token_text) DO UPDATE SET token_text=excluded.token_text RETURNING token_id;`},
		{&s.stmtGetTokenID, `SELECT token_id FROM corpus_vocabulary WHERE token_text = ?;`},
		{&s.stmtGetTokenText, `SELECT token_text FROM corpus_vocabulary WHERE token_id = ?;`},
		{&s.stmtGetVocab, `SELECT token_id, token_text FROM corpus_vocabulary;`},
		{&s.stmtGetVocabLen, `SELECT COUNT(*) FROM corpus_vocabulary;`},
		{&s.stmtInsertSequence, `INSERT INTO corpus_sequences (set_id, seq_key, seq_length, frequency) VALUES (?, ?, ?, ?) ON CONFLICT(set_id, seq_key) DO UPDATE SET frequency = frequency + excluded.frequency;`},
		{&s.stmtGetSequences, `SELECT seq_key, frequency FROM corpus_sequences WHERE set_id = ? ORDER BY rowid;`},
		{&s.stmtSetCounts, `SELECT COUNT(*), coalesce(SUM(frequency), 0), coalesce(SUM(frequency * seq_length), 0) FROM corpus_sequences WHERE set_id = ?;`},
		{&s.stmtPruneSet, `DELETE FROM corpus_sequences WHERE set_id = ? AND frequency <= ?;`},
	}
	for _, st := range statements {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("could not prepare %q: %w", st.query, err)
		}
		*st.dst = stmt
	}
	return s, nil
}

// Close releases all prepared statements held by the Store.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{
		s.stmtGetSetInfo, s.stmtGetSets, s.stmtAddSet, s.stmtInsertVocab,
		s.stmtGetTokenID, s.stmtGetTokenText, s.stmtGetVocab, s.stmtGetVocabLen,
		s.stmtInsertSequence, s.stmtGetSequences, s.stmtSetCounts, s.stmtPruneSet,
	} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Tokenizer returns the tokenizer the Store was created with.
func (s *Store) Tokenizer() Tokenizer {
	return s.tokenizer
}
