package aggregate

import "container/heap"

// topWords selects the n highest-count entries using a bounded min-heap, so
// selection stays O(len(counts) * log n) even for large vocabularies. The
// heap keeps the current best n: whenever it grows past n the weakest entry
// is popped, where weakest means lowest count, ties resolved against the
// lexicographically larger word.
func topWords(counts map[string]int, n int) []WordCount {
	if n <= 0 {
		n = 10
	}
	h := &wordCountHeap{}
	heap.Init(h)
	for word, count := range counts {
		heap.Push(h, WordCount{Word: word, Count: count})
		if h.Len() > n {
			heap.Pop(h)
		}
	}
	result := make([]WordCount, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(WordCount)
	}
	return result
}

type wordCountHeap []WordCount

func (h wordCountHeap) Len() int { return len(h) }

func (h wordCountHeap) Less(i, j int) bool {
	if h[i].Count != h[j].Count {
		return h[i].Count < h[j].Count
	}
	return h[i].Word > h[j].Word
}

func (h wordCountHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *wordCountHeap) Push(x interface{}) {
	*h = append(*h, x.(WordCount))
}

func (h *wordCountHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
