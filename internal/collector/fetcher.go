package collector

import "StockTracker/internal/model"

// Fetcher builds one quote per symbol from the upstream provider, classifying
// the raw responses into an Outcome.
type Fetcher interface {
	Fetch(symbol string) model.Outcome
	Name() string
}

// MockFetcher returns scripted outcomes for development and testing. Outcomes
// are keyed by symbol; unknown symbols get Default, or a generic success.
type MockFetcher struct {
	Outcomes map[string]model.Outcome
	Default  *model.Outcome
	Calls    []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(symbol string) model.Outcome {
	m.Calls = append(m.Calls, symbol)
	if o, ok := m.Outcomes[symbol]; ok {
		return o
	}
	if m.Default != nil {
		return *m.Default
	}
	return model.NewSuccess(&model.Quote{
		Symbol:       symbol,
		CurrentPrice: 100,
		RangeLow:     80,
		RangeHigh:    120,
		CompanyName:  symbol,
	})
}
