// Package report collects per-symbol outcomes into the session and renders
// them as a text summary or a CSV table.
package report

import "StockTracker/internal/model"

// Summary counts outcome tags across a session. A halted session summarizes
// exactly like a completed one, over whatever was recorded before the halt.
type Summary struct {
	Total       int
	Succeeded   int
	Failed      int
	RateLimited int
}

// Record appends the outcome for a symbol, preserving call order.
func Record(session *model.Session, symbol string, outcome model.Outcome) {
	session.Results = append(session.Results, model.SymbolResult{Symbol: symbol, Outcome: outcome})
}

// Summarize tallies the session's recorded outcomes. Cache hits count as
// succeeded since they carry a usable quote.
func Summarize(session *model.Session) Summary {
	sum := Summary{Total: len(session.Results)}
	for _, r := range session.Results {
		switch r.Outcome.Kind {
		case model.OutcomeSuccess, model.OutcomeCacheHit:
			sum.Succeeded++
		case model.OutcomeError:
			sum.Failed++
		case model.OutcomeRateLimited:
			sum.RateLimited++
		}
	}
	return sum
}
