package tm

import (
	"context"
	"sync"
)

type BatchResult struct {
	Word   string
	Result *Result
	Err    error
}

// RunBatch runs every word on its own machine concurrently. The table is
// shared read-only. metrics, when non-nil, builds a fresh metric set per run.
func RunBatch(ctx context.Context, table *Table, start State, words []string, cfg Config, metrics func() []Metric) []BatchResult {
	results := make([]BatchResult, len(words))

	var wg sync.WaitGroup
	for i, word := range words {
		wg.Add(1)
		go func(idx int, word string) {
			defer wg.Done()

			results[idx].Word = word
			m, err := New(table, start, word, cfg)
			if err != nil {
				results[idx].Err = err
				return
			}
			if metrics != nil {
				for _, mt := range metrics() {
					m.AddMetric(mt)
				}
			}
			results[idx].Result, results[idx].Err = m.Run(ctx)
		}(i, word)
	}

	wg.Wait()
	return results
}
