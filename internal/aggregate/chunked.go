package aggregate

import "sync"

// CountChunked counts a token sequence by splitting it into contiguous
// near-equal chunks, counting each chunk in its own goroutine with a private
// local table, and folding the local tables into one Aggregator. The shared
// table is touched exactly once per chunk, so the lock is all but uncontended
// regardless of input size.
func CountChunked(tokens []string, chunks int) *Aggregator {
	agg := New()
	if len(tokens) == 0 {
		return agg
	}
	if chunks < 1 {
		chunks = 1
	}

	size := (len(tokens) + chunks - 1) / chunks
	var wg sync.WaitGroup
	for start := 0; start < len(tokens); start += size {
		end := min(start+size, len(tokens))
		wg.Add(1)
		go func(part []string) {
			defer wg.Done()
			local := make(map[string]int, len(part))
			for _, word := range part {
				local[word]++
			}
			agg.MergeCounts(local)
		}(tokens[start:end])
	}
	wg.Wait()
	return agg
}
