package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestInsertAndGetSetInfo(t *testing.T) {
	_, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()

	inserted, err := s.InsertSet(ctx, "names")
	if err != nil {
		t.Fatalf("InsertSet() failed: %v", err)
	}
	got, err := s.GetSetInfo(ctx, "names")
	if err != nil {
		t.Fatalf("GetSetInfo() failed: %v", err)
	}
	if got != inserted {
		t.Errorf("GetSetInfo() = %+v, want %+v", got, inserted)
	}

	if _, err := s.InsertSet(ctx, "names"); err == nil {
		t.Error("InsertSet() accepted a duplicate name")
	}
	if _, err := s.GetSetInfo(ctx, "missing"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("GetSetInfo(missing) error = %v, want %v", err, ErrSetNotFound)
	}
}

func TestGetSetInfos(t *testing.T) {
	_, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := s.InsertSet(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	sets, err := s.GetSetInfos(ctx)
	if err != nil {
		t.Fatalf("GetSetInfos() failed: %v", err)
	}
	if len(sets) != 3 {
		t.Errorf("expected 3 sets, got %d", len(sets))
	}
	if _, ok := sets["b"]; !ok {
		t.Error("set 'b' missing from GetSetInfos")
	}
}

func TestRemoveSet(t *testing.T) {
	db, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()

	drop, _ := s.InsertSet(ctx, "drop")
	keep, _ := s.InsertSet(ctx, "keep")
	_, _ = s.Train(ctx, drop, strings.NewReader("a b. c d."))
	_, _ = s.Train(ctx, keep, strings.NewReader("a b."))

	if err := s.RemoveSet(ctx, drop); err != nil {
		t.Fatalf("RemoveSet() failed: %v", err)
	}
	if _, err := s.GetSetInfo(ctx, "drop"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("removed set still found: %v", err)
	}

	var count int
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_sequences WHERE set_id = ?", drop.Id).Scan(&count)
	if count != 0 {
		t.Errorf("expected 0 sequences for removed set, got %d", count)
	}
	_ = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_sequences WHERE set_id = ?", keep.Id).Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 sequence for kept set, got %d", count)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx, s, set := setupTestDBWithTraining(t)

	var buf bytes.Buffer
	if err := s.Export(ctx, set, &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	exported := buf.Bytes()

	var decoded ExportedSet
	if err := json.Unmarshal(exported, &decoded); err != nil {
		t.Fatalf("exported JSON is invalid: %v", err)
	}
	if decoded.Name != set.Name || len(decoded.Sequences) != 2 || len(decoded.Vocabulary) != 5 {
		t.Errorf("exported %+v, want 2 sequences over 5 tokens", decoded)
	}

	// A fresh database with a different vocabulary order forces ID remapping.
	_, s2 := setupTestDB(t, NewDefaultTokenizer())
	other, _ := s2.InsertSet(ctx, "other")
	_, _ = s2.Train(ctx, other, strings.NewReader("blue blue red."))

	imported, err := s2.Import(ctx, bytes.NewReader(exported))
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	want, _ := s.Sequences(ctx, set)
	got, err := s2.Sequences(ctx, imported)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("imported sequences = %+v, want %+v", got, want)
	}

	// Importing into an existing set merges frequencies.
	if _, err := s2.Import(ctx, bytes.NewReader(exported)); err != nil {
		t.Fatalf("second Import() failed: %v", err)
	}
	got, _ = s2.Sequences(ctx, imported)
	for i := range got {
		if got[i].Frequency != 2*want[i].Frequency {
			t.Errorf("merged frequency of %v = %d, want %d", got[i].Tokens, got[i].Frequency, 2*want[i].Frequency)
		}
	}
}

func TestImportRejectsInconsistentData(t *testing.T) {
	_, s := setupTestDB(t, NewDefaultTokenizer())
	ctx := context.Background()

	tests := map[string]string{
		"bad json":      `{`,
		"no name":       `{"vocabulary":{},"sequences":[]}`,
		"unknown token": `{"name":"x","vocabulary":{"a":1},"sequences":[{"tokens":[2],"frequency":1}]}`,
		"zero freq":     `{"name":"x","vocabulary":{"a":1},"sequences":[{"tokens":[1],"frequency":0}]}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Import(ctx, strings.NewReader(input)); err == nil {
				t.Error("Import() succeeded")
			}
		})
	}
	// Failed imports roll back, so the set must not exist.
	if _, err := s.GetSetInfo(ctx, "x"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("set from failed import exists: %v", err)
	}
}
