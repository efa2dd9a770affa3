package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Token is a single tokenized unit of text. EOC marks the end of a sequence;
// the text of an EOC token is never stored.
type Token struct {
	Text string
	EOC  bool
}

// Tokenizer splits input text into tokens and renders token sequences back
// into text.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
	// Separator returns the string placed between the prev and current
	// tokens when rendering a sequence.
	Separator(prev, current string) string
	// EOC returns the string appended after last to close a rendered
	// sequence.
	EOC(last string) string
}

// StreamTokenizer processes a stream of data one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}

// Join renders tokens as text using the separator and end rules of t.
func Join(t Tokenizer, tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var builder strings.Builder
	for i, text := range tokens {
		if i > 0 {
			builder.WriteString(t.Separator(tokens[i-1], text))
		}
		builder.WriteString(text)
	}
	builder.WriteString(t.EOC(tokens[len(tokens)-1]))
	return builder.String()
}

// VocabStr looks up a token string in the vocabulary and returns its ID.
func (s *Store) VocabStr(ctx context.Context, token string) (int, error) {
	var tokenID int
	if err := s.stmtGetTokenID.QueryRowContext(ctx, token).Scan(&tokenID); err != nil {
		return 0, err
	}
	return tokenID, nil
}

// VocabInt looks up a token ID in the vocabulary and returns its text.
func (s *Store) VocabInt(ctx context.Context, id int) (string, error) {
	var tokenText string
	if err := s.stmtGetTokenText.QueryRowContext(ctx, id).Scan(&tokenText); err != nil {
		return "", err
	}
	return tokenText, nil
}

// vocabulary loads the whole id -> text table.
func (s *Store) vocabulary(ctx context.Context, tx *sql.Tx) (map[int]string, error) {
	stmt := s.stmtGetVocab
	if tx != nil {
		stmt = tx.StmtContext(ctx, stmt)
	}
	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not query vocabulary: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	vocab := make(map[int]string)
	for rows.Next() {
		var id int
		var text string
		if err = rows.Scan(&id, &text); err != nil {
			return nil, err
		}
		vocab[id] = text
	}
	return vocab, rows.Err()
}

// appendKey appends the space-separated sequence key of ids to buf and
// returns the extended buffer.
func appendKey(buf []byte, ids []int) []byte {
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(id), 10)
	}
	return buf
}

// decodeKey parses a sequence key. The empty key is the empty sequence.
func decodeKey(key string) ([]int, error) {
	if key == "" {
		return []int{}, nil
	}
	parts := strings.Split(key, " ")
	ids := make([]int, len(parts))
	for i, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("malformed sequence key %q: %w", key, err)
		}
		ids[i] = id
	}
	return ids, nil
}
