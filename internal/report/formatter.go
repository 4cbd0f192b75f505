package report

import (
	"fmt"
	"strings"
	"time"

	"StockTracker/internal/calculator"
	"StockTracker/internal/model"

	"github.com/dustin/go-humanize"
)

// FormatSession renders the session as a plain-text report: one block per
// symbol in recorded order, then the tag counts. A halted session states how
// much of the request completed; partial results stay in the report.
func FormatSession(session *model.Session) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Stock Tracker report | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	for _, r := range session.Results {
		switch r.Outcome.Kind {
		case model.OutcomeSuccess, model.OutcomeCacheHit:
			q := r.Outcome.Quote
			b.WriteString(fmt.Sprintf("%s (%s)\n", q.CompanyName, q.Symbol))
			b.WriteString(fmt.Sprintf("  price: $%.2f | 52w low: $%.2f | 52w high: $%.2f\n",
				q.CurrentPrice, q.RangeLow, q.RangeHigh))
			b.WriteString(fmt.Sprintf("  %.1f%% above 52w low, %.1f%% below 52w high\n",
				calculator.AboveLowPercent(q.CurrentPrice, q.RangeLow),
				calculator.BelowHighPercent(q.CurrentPrice, q.RangeHigh)))
			if r.Outcome.Kind == model.OutcomeCacheHit {
				b.WriteString(fmt.Sprintf("  cached %s\n", humanize.Time(q.FetchedAt)))
			}
		case model.OutcomeError:
			b.WriteString(fmt.Sprintf("%s: error: %s\n", r.Symbol, r.Outcome.Reason))
		case model.OutcomeRateLimited:
			b.WriteString(fmt.Sprintf("%s: rate limited: %s\n", r.Symbol, r.Outcome.Reason))
		}
		b.WriteString("\n")
	}

	sum := Summarize(session)
	b.WriteString(fmt.Sprintf("total: %d | succeeded: %d | failed: %d | rate limited: %d\n",
		sum.Total, sum.Succeeded, sum.Failed, sum.RateLimited))

	if session.HaltedEarly {
		b.WriteString(fmt.Sprintf("run halted early: %d of %d requested symbols processed; remaining quota preserved for a later run\n",
			len(session.Results), len(session.Requested)))
	}
	return b.String()
}
