package corpus

import (
	"context"
	"sort"
)

// DBStats holds aggregated statistics for the whole corpus database.
type DBStats struct {
	Sets      []SetInfo        // Every set in the database
	Stats     map[int]SetStats // A mapping of set ids to their stats
	VocabSize int              // The number of unique tokens across all sets
}

// SetStats holds aggregated statistics for a single set.
type SetStats struct {
	DistinctSequences int // The number of unique sequences recorded.
	TotalSequences    int // The sum of frequencies; the number of sequences recorded.
	TotalTokens       int // The number of tokens across every recorded sequence.
}

// GetStats returns a snapshot of statistics for the database.
func (s *Store) GetStats(ctx context.Context) (*DBStats, error) {
	sets, err := s.GetSetInfos(ctx)
	if err != nil {
		return nil, err
	}

	var vocabLen int
	if err = s.stmtGetVocabLen.QueryRowContext(ctx).Scan(&vocabLen); err != nil {
		return nil, err
	}

	stats := &DBStats{
		Sets:      make([]SetInfo, 0, len(sets)),
		Stats:     make(map[int]SetStats, len(sets)),
		VocabSize: vocabLen,
	}
	for _, set := range sets {
		var st SetStats
		err = s.stmtSetCounts.QueryRowContext(ctx, set.Id).Scan(&st.DistinctSequences, &st.TotalSequences, &st.TotalTokens)
		if err != nil {
			return nil, err
		}
		stats.Sets = append(stats.Sets, set)
		stats.Stats[set.Id] = st
	}
	sort.Slice(stats.Sets, func(i, j int) bool { return stats.Sets[i].Id < stats.Sets[j].Id })
	return stats, nil
}
