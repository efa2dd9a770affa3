package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// PruneSet removes every sequence in set recorded minFreq times or fewer.
func (s *Store) PruneSet(ctx context.Context, set SetInfo, minFreq int) (int64, error) {
	res, err := s.stmtPruneSet.ExecContext(ctx, set.Id, minFreq)
	if err != nil {
		return 0, fmt.Errorf("could not prune set %d: %w", set.Id, err)
	}
	rowsAffected, _ := res.RowsAffected()

	s.logger.InfoContext(ctx, "Set pruned",
		slog.String("set_name", set.Name),
		slog.Int("set_id", set.Id),
		slog.Int("min_frequency", minFreq),
		slog.Int64("sequences_removed", rowsAffected),
	)
	return rowsAffected, nil
}

// VocabularyPrune performs a database-wide cleanup, removing tokens used
// fewer than minFrequency times across all sets, counting each recording of
// a sequence. Every sequence that contains a removed token is deleted as
// well. Tokens no sequence refers to are always removed.
func (s *Store) VocabularyPrune(ctx context.Context, minFrequency int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction for pruning: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	vocab, err := s.vocabulary(ctx, tx)
	if err != nil {
		return err
	}

	type row struct {
		setID int
		key   string
		ids   []int
	}
	rows, err := tx.QueryContext(ctx, `SELECT set_id, seq_key, frequency FROM corpus_sequences`)
	if err != nil {
		return fmt.Errorf("failed to query sequences for checking: %w", err)
	}
	usage := make(map[int]int)
	var all []row
	for rows.Next() {
		var r row
		var freq int
		if err := rows.Scan(&r.setID, &r.key, &freq); err != nil {
			_ = rows.Close()
			return fmt.Errorf("failed to scan sequence row: %w", err)
		}
		if r.ids, err = decodeKey(r.key); err != nil {
			_ = rows.Close()
			return err
		}
		for _, id := range r.ids {
			usage[id] += freq
		}
		all = append(all, r)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error after iterating sequence rows: %w", err)
	}

	rare := make(map[int]struct{})
	var rareIDs []any
	for id := range vocab {
		if usage[id] < minFrequency || usage[id] == 0 {
			rare[id] = struct{}{}
			rareIDs = append(rareIDs, id)
		}
	}
	if len(rareIDs) == 0 {
		s.logger.InfoContext(ctx, "No vocabulary to prune",
			slog.Int("min_frequency", minFrequency),
		)
		return tx.Commit()
	}

	del, err := tx.PrepareContext(ctx, `DELETE FROM corpus_sequences WHERE set_id = ? AND seq_key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare sequence delete: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(del)

	var affected int
	for _, r := range all {
		for _, id := range r.ids {
			if _, ok := rare[id]; ok {
				if _, err := del.ExecContext(ctx, r.setID, r.key); err != nil {
					return fmt.Errorf("failed to prune sequence %q: %w", r.key, err)
				}
				affected++
				break
			}
		}
	}

	if err := batchDelete(ctx, tx, "corpus_vocabulary", "token_id", rareIDs); err != nil {
		return fmt.Errorf("failed to prune rare tokens from vocabulary: %w", err)
	}

	s.logger.InfoContext(ctx, "Vocabulary pruned successfully",
		slog.Int("min_frequency", minFrequency),
		slog.Int("tokens_removed", len(rareIDs)),
		slog.Int("sequences_affected", affected),
	)
	return tx.Commit()
}

// batchDelete deletes rows whose column is in ids, splitting large lists to
// stay under SQLite's variable limit.
func batchDelete(ctx context.Context, tx *sql.Tx, table, column string, ids []any) error {
	const batchSize = 500

	for i := 0; i < len(ids); i += batchSize {
		batch := ids[i:min(i+batchSize, len(ids))]
		query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (?%s)", table, column, strings.Repeat(",?", len(batch)-1))
		if _, err := tx.ExecContext(ctx, query, batch...); err != nil {
			return err
		}
	}
	return nil
}
