package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"StockTracker/internal/calculator"
	"StockTracker/internal/model"
)

var csvHeader = []string{
	"Symbol", "Company", "Current Price", "52W Low", "52W High",
	"Above Low %", "Below High %", "Status",
}

// WriteCSV writes one row per recorded symbol in session order. Failed rows
// keep their place with N/A cells so the export always mirrors the session.
func WriteCSV(w io.Writer, session *model.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range session.Results {
		var row []string
		if r.Outcome.HasQuote() {
			q := r.Outcome.Quote
			row = []string{
				q.Symbol,
				q.CompanyName,
				fmt.Sprintf("$%.2f", q.CurrentPrice),
				fmt.Sprintf("$%.2f", q.RangeLow),
				fmt.Sprintf("$%.2f", q.RangeHigh),
				fmt.Sprintf("%.1f%%", calculator.AboveLowPercent(q.CurrentPrice, q.RangeLow)),
				fmt.Sprintf("%.1f%%", calculator.BelowHighPercent(q.CurrentPrice, q.RangeHigh)),
				statusLabel(r.Outcome),
			}
		} else {
			row = []string{r.Symbol, "N/A", "N/A", "N/A", "N/A", "N/A", "N/A", statusLabel(r.Outcome)}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.Symbol, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func statusLabel(o model.Outcome) string {
	switch o.Kind {
	case model.OutcomeSuccess:
		return "Success"
	case model.OutcomeCacheHit:
		return "Success (cached)"
	case model.OutcomeRateLimited:
		return "Rate limited: " + o.Reason
	default:
		return "Error: " + o.Reason
	}
}
