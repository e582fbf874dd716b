package aggregate

import (
	"math/rand"
	"sort"
	"sync"
	"testing"
)

// fileA and fileB are the cleaned token sequences of the canonical two-file
// corpus used across the test suite.
var (
	fileA = []string{"the", "cat", "sat", "the", "dog", "ran"}
	fileB = []string{"a", "cat", "runs", "a", "dog", "sat"}
)

func sameCounts(t *testing.T, got, want map[string]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("table size = %d, want %d (got %v)", len(got), len(want), got)
	}
	for word, n := range want {
		if got[word] != n {
			t.Errorf("count[%q] = %d, want %d", word, got[word], n)
		}
	}
}

func TestMergeAndSnapshot(t *testing.T) {
	agg := New()
	agg.Merge(fileA)
	agg.Merge(fileB)

	sameCounts(t, agg.Counts(), map[string]int{
		"a": 2, "cat": 2, "dog": 2, "ran": 1, "runs": 1, "sat": 2, "the": 2,
	})

	stats := agg.Snapshot(10)
	if stats.TotalWords != 12 {
		t.Errorf("TotalWords = %d, want 12", stats.TotalWords)
	}
	if stats.UniqueWords != 7 {
		t.Errorf("UniqueWords = %d, want 7", stats.UniqueWords)
	}

	want := []WordCount{
		{"a", 2}, {"cat", 2}, {"dog", 2}, {"sat", 2}, {"the", 2},
		{"ran", 1}, {"runs", 1},
	}
	if len(stats.TopWords) != len(want) {
		t.Fatalf("TopWords = %v, want %v", stats.TopWords, want)
	}
	for i := range want {
		if stats.TopWords[i] != want[i] {
			t.Errorf("TopWords[%d] = %v, want %v", i, stats.TopWords[i], want[i])
		}
	}
}

func TestSnapshotEmpty(t *testing.T) {
	stats := New().Snapshot(10)
	if stats.TotalWords != 0 || stats.UniqueWords != 0 || len(stats.TopWords) != 0 {
		t.Errorf("empty snapshot = %+v, want zeros", stats)
	}
}

func TestSnapshotTruncatesToN(t *testing.T) {
	agg := New()
	agg.Merge(fileA)
	agg.Merge(fileB)

	top3 := agg.Snapshot(3).TopWords
	want := []WordCount{{"a", 2}, {"cat", 2}, {"dog", 2}}
	if len(top3) != 3 {
		t.Fatalf("len(top3) = %d, want 3", len(top3))
	}
	for i := range want {
		if top3[i] != want[i] {
			t.Errorf("top3[%d] = %v, want %v", i, top3[i], want[i])
		}
	}
}

func TestTopWordsTieBreak(t *testing.T) {
	counts := map[string]int{"delta": 3, "bravo": 2, "alpha": 2, "zulu": 2, "mike": 1}
	got := topWords(counts, 5)
	want := []WordCount{{"delta", 3}, {"alpha", 2}, {"bravo", 2}, {"zulu", 2}, {"mike", 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topWords[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTopWordsDefaultsN(t *testing.T) {
	counts := make(map[string]int)
	for _, w := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		counts[w] = 1
	}
	if got := len(topWords(counts, 0)); got != 10 {
		t.Errorf("topWords with n=0 returned %d entries, want the default 10", got)
	}
	if got := len(topWords(counts, 100)); got != len(counts) {
		t.Errorf("topWords with oversized n returned %d entries, want %d", got, len(counts))
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	agg := New()
	agg.Merge(fileA)
	agg.Merge(fileB)
	first := agg.Snapshot(10)
	for i := 0; i < 20; i++ {
		if again := agg.Snapshot(10); !first.Equal(again) {
			t.Fatalf("snapshot %d = %+v, want %+v", i, again, first)
		}
	}
}

// ---------------------------------------------------------------------------
// Merge commutativity
// ---------------------------------------------------------------------------

func TestMergeCommutativity(t *testing.T) {
	parts := [][]string{
		{"go", "routines", "share", "memory"},
		{"by", "communicating", "go", "go"},
		{"share", "go"},
		{},
		{"memory", "memory", "by"},
	}

	reference := New()
	for _, part := range parts {
		reference.Merge(part)
	}
	refCounts := reference.Counts()
	refStats := reference.Snapshot(10)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 25; trial++ {
		order := rng.Perm(len(parts))
		agg := New()
		for _, idx := range order {
			agg.Merge(parts[idx])
		}
		sameCounts(t, agg.Counts(), refCounts)
		if !agg.Snapshot(10).Equal(refStats) {
			t.Fatalf("merge order %v produced different stats", order)
		}
	}
}

func TestMergeConcurrent(t *testing.T) {
	const workers = 32
	agg := New()
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.Merge(fileA)
			agg.Merge(fileB)
		}()
	}
	wg.Wait()

	stats := agg.Snapshot(10)
	if want := workers * (len(fileA) + len(fileB)); stats.TotalWords != want {
		t.Errorf("TotalWords = %d, want %d", stats.TotalWords, want)
	}
	if stats.UniqueWords != 7 {
		t.Errorf("UniqueWords = %d, want 7", stats.UniqueWords)
	}
	if counts := agg.Counts(); counts["cat"] != 2*workers {
		t.Errorf("count[cat] = %d, want %d", counts["cat"], 2*workers)
	}
}

func TestMergeCounts(t *testing.T) {
	agg := New()
	agg.Merge([]string{"one", "two", "two"})
	agg.MergeCounts(map[string]int{"two": 3, "three": 1})

	sameCounts(t, agg.Counts(), map[string]int{"one": 1, "two": 5, "three": 1})
	if total := agg.Snapshot(10).TotalWords; total != 7 {
		t.Errorf("TotalWords = %d, want 7", total)
	}
}

func TestVocabularySorted(t *testing.T) {
	agg := New()
	agg.Merge([]string{"zulu", "alpha", "mike", "alpha", "bravo"})
	vocab := agg.Vocabulary()
	if !sort.StringsAreSorted(vocab) {
		t.Errorf("vocabulary not sorted: %v", vocab)
	}
	want := []string{"alpha", "bravo", "mike", "zulu"}
	if len(vocab) != len(want) {
		t.Fatalf("vocabulary = %v, want %v", vocab, want)
	}
	for i := range want {
		if vocab[i] != want[i] {
			t.Errorf("vocabulary[%d] = %s, want %s", i, vocab[i], want[i])
		}
	}
}

func TestStatsEqual(t *testing.T) {
	base := Stats{TotalWords: 10, UniqueWords: 3, TopWords: []WordCount{{"a", 5}, {"b", 3}, {"c", 2}}}

	same := Stats{TotalWords: 10, UniqueWords: 3, TopWords: []WordCount{{"a", 5}, {"b", 3}, {"c", 2}}}
	if !base.Equal(same) {
		t.Error("identical stats reported unequal")
	}

	cases := map[string]Stats{
		"total differs":  {TotalWords: 11, UniqueWords: 3, TopWords: base.TopWords},
		"unique differs": {TotalWords: 10, UniqueWords: 4, TopWords: base.TopWords},
		"top count differs": {TotalWords: 10, UniqueWords: 3,
			TopWords: []WordCount{{"a", 5}, {"b", 4}, {"c", 2}}},
		"top order differs": {TotalWords: 10, UniqueWords: 3,
			TopWords: []WordCount{{"b", 3}, {"a", 5}, {"c", 2}}},
		"top shorter": {TotalWords: 10, UniqueWords: 3,
			TopWords: []WordCount{{"a", 5}, {"b", 3}}},
	}
	for name, other := range cases {
		if base.Equal(other) {
			t.Errorf("%s: reported equal", name)
		}
	}
}
