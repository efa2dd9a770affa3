package corpus

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestTrain(t *testing.T) {
	db, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()
	set, err := s.InsertSet(ctx, "train_test")
	if err != nil {
		t.Fatalf("InsertSet failed: %v", err)
	}

	n, err := s.Train(ctx, set, strings.NewReader("a b c. a b c. a b d.. e"))
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Train() recorded %d sequences, want 4", n)
	}

	var distinct int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_sequences WHERE set_id = ?", set.Id).Scan(&distinct)
	if err != nil {
		t.Fatal(err)
	}
	if distinct != 3 {
		t.Errorf("expected 3 distinct sequences, got %d", distinct)
	}

	seqs, err := s.Sequences(ctx, set)
	if err != nil {
		t.Fatalf("Sequences() failed: %v", err)
	}
	want := []Sequence{
		{Tokens: []string{"a", "b", "c"}, Frequency: 2},
		{Tokens: []string{"a", "b", "d"}, Frequency: 1},
		{Tokens: []string{"e"}, Frequency: 1},
	}
	if !reflect.DeepEqual(seqs, want) {
		t.Errorf("Sequences() = %+v, want %+v", seqs, want)
	}
}

func TestTrainTruncatesLongSequences(t *testing.T) {
	_, s := setupTestDB(t, NewRuneTokenizer())
	ctx := context.Background()
	set, _ := s.InsertSet(ctx, "long")

	line := strings.Repeat("x", MaxSequenceLength+10)
	if _, err := s.Train(ctx, set, strings.NewReader(line+"\nab\n")); err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	seqs, err := s.Sequences(ctx, set)
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != 2 {
		t.Fatalf("got %d sequences, want 2", len(seqs))
	}
	if len(seqs[0].Tokens) != MaxSequenceLength {
		t.Errorf("first sequence has %d tokens, want %d", len(seqs[0].Tokens), MaxSequenceLength)
	}
	if !reflect.DeepEqual(seqs[1].Tokens, []string{"a", "b"}) {
		t.Errorf("second sequence = %v, want [a b]", seqs[1].Tokens)
	}
}

func TestTrainCanceled(t *testing.T) {
	_, s := setupTestDB(t, NewDefaultTokenizer())
	set, _ := s.InsertSet(context.Background(), "canceled")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Train(ctx, set, strings.NewReader("a b.")); err == nil {
		t.Fatal("Train() with canceled context succeeded")
	}
}

func TestAddSequence(t *testing.T) {
	_, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()
	set, _ := s.InsertSet(ctx, "add")

	for _, tokens := range [][]string{{"x", "y"}, {"x", "y"}, {}} {
		if err := s.AddSequence(ctx, set, tokens); err != nil {
			t.Fatalf("AddSequence(%v) failed: %v", tokens, err)
		}
	}
	seqs, err := s.Sequences(ctx, set)
	if err != nil {
		t.Fatal(err)
	}
	want := []Sequence{
		{Tokens: []string{"x", "y"}, Frequency: 2},
		{Tokens: []string{}, Frequency: 1},
	}
	if !reflect.DeepEqual(seqs, want) {
		t.Errorf("Sequences() = %+v, want %+v", seqs, want)
	}

	if err := s.AddSequence(ctx, set, make([]string, MaxSequenceLength+1)); err == nil {
		t.Error("AddSequence accepted an over-long sequence")
	}
}

func TestSequenceWriterReusesKeyBuffer(t *testing.T) {
	db, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()
	set, err := s.InsertSet(ctx, "keys")
	if err != nil {
		t.Fatal(err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = tx.Rollback() }()

	w := s.newSequenceWriter(ctx, tx, set)
	if err = w.write([]int{101, 202, 303}); err != nil {
		t.Fatalf("write() error = %v", err)
	}
	if string(w.keyBuf) != "101 202 303" {
		t.Fatalf("keyBuf = %q after first write", w.keyBuf)
	}
	first := &w.keyBuf[0]
	if err = w.write([]int{4, 5}); err != nil {
		t.Fatalf("write() error = %v", err)
	}
	if string(w.keyBuf) != "4 5" {
		t.Errorf("keyBuf = %q after second write", w.keyBuf)
	}
	if &w.keyBuf[0] != first {
		t.Error("second write allocated a new key buffer")
	}
}

func BenchmarkTrain(b *testing.B) {
	corpus := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 200)
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		_, s := setupTestDB(b, NewDefaultTokenizer())
		set, _ := s.InsertSet(ctx, "bench")
		b.StartTimer()
		if _, err := s.Train(ctx, set, strings.NewReader(corpus)); err != nil {
			b.Fatal(err)
		}
	}
}
