package markov

import (
	"testing"

	"github.com/CTAG07/seedchain/pkg/rng"
	"github.com/CTAG07/seedchain/pkg/source"
)

// abc is the single-path training sequence used throughout the tests.
var abc = []string{"A", "B", "C"}

// newTestSource returns a deterministic source for a test.
func newTestSource(t testing.TB, name string, seed uint64) rng.Source {
	t.Helper()
	src, err := source.New(name, seed)
	if err != nil {
		t.Fatalf("source.New(%q) error = %v", name, err)
	}
	return src
}

// setupTrainedModel returns a model trained once on abc.
func setupTrainedModel(t testing.TB) *Model[string] {
	t.Helper()
	m := New[string]()
	m.Train(abc)
	return m
}

// createBenchmarkCorpus returns a set of word sequences with shared
// vocabulary for benchmarking.
func createBenchmarkCorpus() [][]string {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "and", "runs"}
	var corpus [][]string
	for i := 0; i < 500; i++ {
		seq := make([]string, 0, 12)
		for j := 0; j < 3+i%10; j++ {
			seq = append(seq, words[(i*7+j*3)%len(words)])
		}
		corpus = append(corpus, seq)
	}
	return corpus
}

func isSuffix(s, of []string) bool {
	if len(s) > len(of) {
		return false
	}
	off := len(of) - len(s)
	for i := range s {
		if s[i] != of[off+i] {
			return false
		}
	}
	return true
}
