package markov

import (
	"sync"
	"testing"
)

func TestValueEquality(t *testing.T) {
	if Of("a") != Of("a") {
		t.Error("Of(a) != Of(a)")
	}
	if Of("a") == Of("b") {
		t.Error("Of(a) == Of(b)")
	}
	if End[string]() != End[string]() {
		t.Error("End != End")
	}
	// The zero value of the element type is still a concrete value.
	if Of("") == End[string]() {
		t.Error("Of(\"\") == End")
	}
	if got := End[int]().String(); got != EndText {
		t.Errorf("End.String() = %q, want %q", got, EndText)
	}
	if v, ok := Of(7).Get(); !ok || v != 7 {
		t.Errorf("Of(7).Get() = %v, %v", v, ok)
	}
	if _, ok := End[int]().Get(); ok {
		t.Error("End.Get() ok = true")
	}
}

func TestNewModelUntrained(t *testing.T) {
	m := New[string]()
	if m.Trained() {
		t.Error("new model reports trained")
	}
	if m.Items().Len() != 0 || m.Firsts().Len() != 0 || m.Lengths().Len() != 0 {
		t.Error("new model has non-empty tables")
	}
	if _, ok := m.Successors(Of("A")); ok {
		t.Error("Successors(A) ok on untrained model")
	}
}

func TestSnapshotViews(t *testing.T) {
	m := setupTrainedModel(t)
	items := m.Items()
	m.Train(abc)

	// The view taken before the second Train must not change.
	i := items.IndexOf(Of("A"))
	if i < 0 {
		t.Fatal("A missing from items")
	}
	e, _ := items.At(i)
	if e.Weight != 1 {
		t.Errorf("snapshot weight of A = %v, want 1", e.Weight)
	}
	e, _ = m.Items().At(m.Items().IndexOf(Of("A")))
	if e.Weight != 2 {
		t.Errorf("current weight of A = %v, want 2", e.Weight)
	}
}

func TestStats(t *testing.T) {
	m := setupTrainedModel(t)
	m.Train([]string{"A", "D"})
	m.Train(nil)

	got := m.Stats()
	want := Stats{
		Sequences:   3,
		Values:      4,
		Transitions: 5, // A->B B->C C->end A->D D->end
		Frequency:   5,
		Starts:      1,
		Lengths:     3,
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestConcurrentUse(t *testing.T) {
	m := setupTrainedModel(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Train(abc)
			}
		}()
		src := newTestSource(t, "xorshift", uint64(i+1))
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				out, err := m.GenerateAnyLength(src, true)
				if err != nil {
					t.Errorf("GenerateAnyLength() error = %v", err)
					return
				}
				if len(out) != 3 {
					t.Errorf("GenerateAnyLength() = %v, want %v", out, abc)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := m.Stats().Sequences; got != 801 {
		t.Errorf("Sequences = %d, want 801", got)
	}
}
