package corpus

import "testing"

func TestGetStats(t *testing.T) {
	ctx, s, set := setupTestDBWithTraining(t)
	empty, _ := s.InsertSet(ctx, "empty")

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.VocabSize != 5 {
		t.Errorf("VocabSize = %d, want 5", stats.VocabSize)
	}
	if len(stats.Sets) != 2 || stats.Sets[0] != set || stats.Sets[1] != empty {
		t.Errorf("Sets = %+v, want [%+v %+v]", stats.Sets, set, empty)
	}
	want := SetStats{DistinctSequences: 2, TotalSequences: 3, TotalTokens: 12}
	if got := stats.Stats[set.Id]; got != want {
		t.Errorf("Stats[%d] = %+v, want %+v", set.Id, got, want)
	}
	if got := stats.Stats[empty.Id]; got != (SetStats{}) {
		t.Errorf("Stats[empty] = %+v, want zero", got)
	}
}
