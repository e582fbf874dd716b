// Package aggregate builds the word-frequency table shared by all execution
// strategies and derives the run statistics from it. Merge order never
// affects the final table content, which is what lets three different
// concurrency models produce identical results.
package aggregate

import (
	"sort"
	"sync"
)

// WordCount pairs a token with its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Stats is the frozen, read-only view of a frequency table.
type Stats struct {
	TotalWords  int         `json:"total_words"`
	UniqueWords int         `json:"unique_words"`
	TopWords    []WordCount `json:"top_words"`
}

// Equal reports whether two snapshots agree on totals, unique counts, and
// top-word content and order.
func (s Stats) Equal(other Stats) bool {
	if s.TotalWords != other.TotalWords || s.UniqueWords != other.UniqueWords {
		return false
	}
	if len(s.TopWords) != len(other.TopWords) {
		return false
	}
	for i := range s.TopWords {
		if s.TopWords[i] != other.TopWords[i] {
			return false
		}
	}
	return true
}

// Aggregator accumulates token counts. A single coarse lock guards the table:
// merge cost is low next to file I/O and cleaning, so finer locking buys
// nothing.
type Aggregator struct {
	mu     sync.Mutex
	counts map[string]int
	total  int
}

func New() *Aggregator {
	return &Aggregator{
		counts: make(map[string]int),
	}
}

// Merge folds one file's token sequence into the table, one increment per
// occurrence. Safe for concurrent use.
func (a *Aggregator) Merge(tokens []string) {
	if len(tokens) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, word := range tokens {
		a.counts[word]++
	}
	a.total += len(tokens)
}

// MergeCounts folds a pre-counted local table into the shared one in a single
// locked pass. Workers that count privately and merge once avoid almost all
// lock contention.
func (a *Aggregator) MergeCounts(counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for word, n := range counts {
		a.counts[word] += n
		a.total += n
	}
}

// Snapshot freezes the table into Stats. The top list holds the n highest
// counts ordered count-descending with ties broken by token ascending, so
// repeated snapshots of the same table are always identical.
func (a *Aggregator) Snapshot(n int) Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{
		TotalWords:  a.total,
		UniqueWords: len(a.counts),
		TopWords:    topWords(a.counts, n),
	}
}

// Vocabulary returns every distinct token sorted ascending.
func (a *Aggregator) Vocabulary() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	words := make([]string, 0, len(a.counts))
	for word := range a.counts {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Counts returns a copy of the full frequency table.
func (a *Aggregator) Counts() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	counts := make(map[string]int, len(a.counts))
	for word, n := range a.counts {
		counts[word] = n
	}
	return counts
}
