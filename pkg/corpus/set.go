package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// SetInfo identifies a named set of training sequences.
type SetInfo struct {
	Id   int
	Name string
}

// ExportedSet is the serializable representation of a set, used for
// JSON-based import and export.
type ExportedSet struct {
	Name       string             `json:"name"`
	Vocabulary map[string]int     `json:"vocabulary"` // token_text -> token_id
	Sequences  []ExportedSequence `json:"sequences"`
}

// ExportedSequence is one stored sequence within an ExportedSet. Tokens are
// IDs from the set's exported vocabulary.
type ExportedSequence struct {
	Tokens    []int `json:"tokens"`
	Frequency int   `json:"frequency"`
}

// GetSetInfos retrieves all sets in the database, keyed by name.
func (s *Store) GetSetInfos(ctx context.Context) (map[string]SetInfo, error) {
	rows, err := s.stmtGetSets.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	sets := make(map[string]SetInfo)
	for rows.Next() {
		var set SetInfo
		if err = rows.Scan(&set.Id, &set.Name); err != nil {
			return nil, err
		}
		sets[set.Name] = set
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// GetSetInfo retrieves a single set by name. It returns ErrSetNotFound if no
// such set exists.
func (s *Store) GetSetInfo(ctx context.Context, name string) (SetInfo, error) {
	var id int
	err := s.stmtGetSetInfo.QueryRowContext(ctx, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return SetInfo{}, fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}
	if err != nil {
		return SetInfo{}, err
	}
	return SetInfo{Id: id, Name: name}, nil
}

// InsertSet creates a new, empty set and returns it.
func (s *Store) InsertSet(ctx context.Context, name string) (SetInfo, error) {
	res, err := s.stmtAddSet.ExecContext(ctx, name)
	if err != nil {
		return SetInfo{}, fmt.Errorf("could not insert set %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SetInfo{}, err
	}
	return SetInfo{Id: int(id), Name: name}, nil
}

// RemoveSet deletes a set and all of its sequences. The operation is
// performed within a transaction.
func (s *Store) RemoveSet(ctx context.Context, set SetInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM corpus_sequences WHERE set_id = ?", set.Id); err != nil {
		return fmt.Errorf("failed to remove sequences for set %d: %w", set.Id, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM corpus_sets WHERE set_id = ?", set.Id); err != nil {
		return fmt.Errorf("failed to remove set %d: %w", set.Id, err)
	}

	s.logger.InfoContext(ctx, "Set removed successfully",
		slog.String("set_name", set.Name),
		slog.Int("set_id", set.Id),
	)
	return tx.Commit()
}

// Export serializes a set as JSON and writes it to w.
func (s *Store) Export(ctx context.Context, set SetInfo, w io.Writer) error {
	stored, err := s.storedSequences(ctx, set)
	if err != nil {
		return err
	}
	vocab, err := s.vocabulary(ctx, nil)
	if err != nil {
		return err
	}

	exported := ExportedSet{
		Name:       set.Name,
		Vocabulary: make(map[string]int),
		Sequences:  make([]ExportedSequence, 0, len(stored)),
	}
	for _, seq := range stored {
		for _, id := range seq.ids {
			text, ok := vocab[id]
			if !ok {
				return fmt.Errorf("consistency error: token id %d not found in vocabulary", id)
			}
			exported.Vocabulary[text] = id
		}
		exported.Sequences = append(exported.Sequences, ExportedSequence{Tokens: seq.ids, Frequency: seq.frequency})
	}

	s.logger.InfoContext(ctx, "Set exported",
		slog.String("set_name", set.Name),
		slog.Int("set_id", set.Id),
		slog.Int("vocab_items_exported", len(exported.Vocabulary)),
		slog.Int("sequences_exported", len(exported.Sequences)),
	)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exported)
}

// Import reads a JSON set from r and merges it into the database. If the set
// already exists, identical sequences have their frequencies added. Token IDs
// are remapped onto the local vocabulary. The operation is transactional.
func (s *Store) Import(ctx context.Context, r io.Reader) (SetInfo, error) {
	var imported ExportedSet
	if err := json.NewDecoder(r).Decode(&imported); err != nil {
		return SetInfo{}, fmt.Errorf("failed to decode json set: %w", err)
	}
	if imported.Name == "" {
		return SetInfo{}, errors.New("imported set has no name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SetInfo{}, fmt.Errorf("could not begin transaction for import: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	set := SetInfo{Name: imported.Name}
	err = tx.StmtContext(ctx, s.stmtGetSetInfo).QueryRowContext(ctx, imported.Name).Scan(&set.Id)
	if errors.Is(err, sql.ErrNoRows) {
		res, err := tx.StmtContext(ctx, s.stmtAddSet).ExecContext(ctx, imported.Name)
		if err != nil {
			return SetInfo{}, fmt.Errorf("failed to insert new set %q: %w", imported.Name, err)
		}
		newID, _ := res.LastInsertId()
		set.Id = int(newID)
	} else if err != nil {
		return SetInfo{}, fmt.Errorf("failed to query for set %q: %w", imported.Name, err)
	}

	stmtInsertVocab := tx.StmtContext(ctx, s.stmtInsertVocab)
	stmtInsertSequence := tx.StmtContext(ctx, s.stmtInsertSequence)

	vocabIDMap := make(map[int]int) // old_id -> new_id
	for text, oldID := range imported.Vocabulary {
		var newID int
		if err := stmtInsertVocab.QueryRowContext(ctx, text).Scan(&newID); err != nil {
			return SetInfo{}, fmt.Errorf("failed to get/insert vocab %q: %w", text, err)
		}
		vocabIDMap[oldID] = newID
	}

	var keyBuf []byte
	newIDs := make([]int, 0, 64)
	for _, seq := range imported.Sequences {
		if seq.Frequency <= 0 {
			return SetInfo{}, fmt.Errorf("import consistency error: sequence frequency %d", seq.Frequency)
		}
		newIDs = newIDs[:0]
		for _, oldID := range seq.Tokens {
			newID, ok := vocabIDMap[oldID]
			if !ok {
				return SetInfo{}, fmt.Errorf("import consistency error: old token id %d not found in vocab map", oldID)
			}
			newIDs = append(newIDs, newID)
		}
		keyBuf = appendKey(keyBuf[:0], newIDs)
		key := string(keyBuf)
		if _, err = stmtInsertSequence.ExecContext(ctx, set.Id, key, len(newIDs), seq.Frequency); err != nil {
			return SetInfo{}, fmt.Errorf("failed to insert sequence %q: %w", key, err)
		}
	}

	s.logger.InfoContext(ctx, "Set imported successfully",
		slog.String("set_name", set.Name),
		slog.Int("target_set_id", set.Id),
		slog.Int("vocab_items_merged", len(imported.Vocabulary)),
		slog.Int("sequences_merged", len(imported.Sequences)),
	)

	return set, tx.Commit()
}
