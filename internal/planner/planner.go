// Package planner partitions a requested symbol list into the fixed-size
// batches the rate-limited scheduler drives, and estimates run duration.
package planner

import "time"

// DefaultBatchSize matches the upstream free tier's five calls per minute.
const DefaultBatchSize = 5

// Plan chunks symbols left to right into batches of at most maxBatchSize,
// preserving input order. The last batch may be partial. Concatenating the
// batches in order reproduces the input exactly.
func Plan(symbols []string, maxBatchSize int) [][]string {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultBatchSize
	}
	if len(symbols) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(symbols)+maxBatchSize-1)/maxBatchSize)
	for start := 0; start < len(symbols); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(symbols) {
			end = len(symbols)
		}
		batches = append(batches, symbols[start:end])
	}
	return batches
}

// Estimate returns the worst-case wall time for fetching n symbols: one
// inter-batch wait between consecutive batches plus per-symbol spacing.
// A real run comes in under this figure, since cache hits and each batch's
// final symbol skip their spacing.
func Estimate(n, maxBatchSize int, perSymbolDelay, interBatchWait time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultBatchSize
	}
	batchCount := (n + maxBatchSize - 1) / maxBatchSize
	return time.Duration(batchCount-1)*interBatchWait + time.Duration(n)*perSymbolDelay
}
