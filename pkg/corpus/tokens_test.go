package corpus

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func collect(t *testing.T, tok Tokenizer, input string) []Token {
	t.Helper()
	stream := tok.NewStream(strings.NewReader(input))
	var out []Token
	for {
		token, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		out = append(out, *token)
	}
}

func TestDefaultTokenizerStream(t *testing.T) {
	got := collect(t, NewDefaultTokenizer(), "Hello, world! It's\nfine.")
	want := []Token{
		{Text: "Hello"}, {Text: ","}, {Text: "world"}, {Text: "!", EOC: true},
		{Text: "It's"}, {Text: "fine"}, {Text: ".", EOC: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %+v, want %+v", got, want)
	}
}

func TestRuneTokenizerStream(t *testing.T) {
	got := collect(t, NewRuneTokenizer(), "ab\n\nç")
	want := []Token{
		{Text: "a"}, {Text: "b"}, {EOC: true},
		{EOC: true},
		{Text: "ç"}, {EOC: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %+v, want %+v", got, want)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name   string
		tok    Tokenizer
		tokens []string
		want   string
	}{
		{"words", NewDefaultTokenizer(), []string{"one", "fish", ",", "two"}, "one fish, two."},
		{"trailing punctuation", NewDefaultTokenizer(), []string{"done", "!"}, "done!"},
		{"custom", NewDefaultTokenizer(WithSeparator("_"), WithEOC("")), []string{"a", "b"}, "a_b"},
		{"runes", NewRuneTokenizer(), []string{"m", "a", "r", "y"}, "mary"},
		{"empty", NewDefaultTokenizer(), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.tok, tt.tokens); got != tt.want {
				t.Errorf("Join() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVocabLookup(t *testing.T) {
	ctx, s, _ := setupTestDBWithTraining(t)

	id, err := s.VocabStr(ctx, "fish")
	if err != nil {
		t.Fatalf("VocabStr('fish') failed: %v", err)
	}
	text, err := s.VocabInt(ctx, id)
	if err != nil {
		t.Fatalf("VocabInt(%d) failed: %v", id, err)
	}
	if text != "fish" {
		t.Errorf("expected 'fish', got '%s'", text)
	}
	// Sequence-ending punctuation is never stored.
	if _, err := s.VocabStr(ctx, "."); err == nil {
		t.Error("EOC token '.' found in vocabulary")
	}
}

func TestSequenceKey(t *testing.T) {
	for _, ids := range [][]int{{}, {7}, {1, 22, 333}} {
		key := string(appendKey(nil, ids))
		got, err := decodeKey(key)
		if err != nil {
			t.Fatalf("decodeKey(%q) error = %v", key, err)
		}
		if !reflect.DeepEqual(got, ids) {
			t.Errorf("decodeKey(appendKey(%v)) = %v", ids, got)
		}
	}
	if _, err := decodeKey("1 x"); err == nil {
		t.Error("decodeKey accepted a malformed key")
	}
}
