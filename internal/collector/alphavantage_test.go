package collector

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"StockTracker/internal/model"
)

// fakeUpstream serves canned bodies per Alpha Vantage function and counts
// calls so tests can assert short-circuiting.
type fakeUpstream struct {
	bodies map[string]string
	calls  []string
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn := r.URL.Query().Get("function")
		f.calls = append(f.calls, fn)
		body, ok := f.bodies[fn]
		if !ok {
			http.Error(w, "unexpected function "+fn, http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, body)
	}
}

const weeklyBody = `{"Weekly Adjusted Time Series": {
	"2026-08-28": {"2. high": "120.0", "3. low": "110.0"},
	"2026-08-21": {"2. high": "125.0", "3. low": "105.0"},
	"2026-08-14": {"2. high": "118.0", "3. low": "95.0"}
}}`

func TestFetch_Success(t *testing.T) {
	up := &fakeUpstream{bodies: map[string]string{
		"GLOBAL_QUOTE":                `{"Global Quote": {"01. symbol": "AAPL", "05. price": "115.5000"}}`,
		"OVERVIEW":                    `{"Name": "Apple Inc"}`,
		"TIME_SERIES_WEEKLY_ADJUSTED": weeklyBody,
	}}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()

	f := NewAlphaVantageFetcher(srv.URL, "demo", "")
	outcome := f.Fetch("AAPL")
	if outcome.Kind != model.OutcomeSuccess {
		t.Fatalf("expected success, got %v (%s)", outcome.Kind, outcome.Reason)
	}
	q := outcome.Quote
	if q.Symbol != "AAPL" || q.CompanyName != "Apple Inc" {
		t.Errorf("unexpected identity: %+v", q)
	}
	if q.CurrentPrice != 115.5 {
		t.Errorf("expected price 115.5, got %v", q.CurrentPrice)
	}
	if q.RangeHigh != 125 || q.RangeLow != 95 {
		t.Errorf("expected range 95..125, got %v..%v", q.RangeLow, q.RangeHigh)
	}
	if q.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
	if len(up.calls) != 3 {
		t.Errorf("expected 3 upstream calls, got %v", up.calls)
	}
}

func TestFetch_RateLimitOnQuoteShortCircuits(t *testing.T) {
	up := &fakeUpstream{bodies: map[string]string{
		"GLOBAL_QUOTE": `{"Note": "5 calls per minute exceeded"}`,
	}}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()

	f := NewAlphaVantageFetcher(srv.URL, "demo", "")
	outcome := f.Fetch("AAPL")
	if outcome.Kind != model.OutcomeRateLimited {
		t.Fatalf("expected rate limited, got %v", outcome.Kind)
	}
	if len(up.calls) != 1 {
		t.Errorf("expected the remaining calls to be skipped, got %v", up.calls)
	}
}

func TestFetch_RateLimitOnOverviewHaltsLikeAnyOther(t *testing.T) {
	up := &fakeUpstream{bodies: map[string]string{
		"GLOBAL_QUOTE": `{"Global Quote": {"05. price": "115.5"}}`,
		"OVERVIEW":     `{"Information": "rate limit reached"}`,
	}}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()

	f := NewAlphaVantageFetcher(srv.URL, "demo", "")
	outcome := f.Fetch("AAPL")
	if outcome.Kind != model.OutcomeRateLimited {
		t.Fatalf("expected rate limited from the metadata call, got %v", outcome.Kind)
	}
	if len(up.calls) != 2 {
		t.Errorf("expected the weekly call to be skipped, got %v", up.calls)
	}
}

func TestFetch_OverviewErrorFallsBackToSymbol(t *testing.T) {
	up := &fakeUpstream{bodies: map[string]string{
		"GLOBAL_QUOTE":                `{"Global Quote": {"05. price": "115.5"}}`,
		"OVERVIEW":                    `{"Error Message": "no overview for this symbol"}`,
		"TIME_SERIES_WEEKLY_ADJUSTED": weeklyBody,
	}}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()

	f := NewAlphaVantageFetcher(srv.URL, "demo", "")
	outcome := f.Fetch("AAPL")
	if outcome.Kind != model.OutcomeSuccess {
		t.Fatalf("expected success despite overview error, got %v (%s)", outcome.Kind, outcome.Reason)
	}
	if outcome.Quote.CompanyName != "AAPL" {
		t.Errorf("expected fallback to raw symbol, got %q", outcome.Quote.CompanyName)
	}
}

func TestFetch_MissingPayloadIsError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty quote", `{"Global Quote": {}}`},
		{"no price field", `{"Global Quote": {"01. symbol": "AAPL"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeUpstream{bodies: map[string]string{"GLOBAL_QUOTE": tt.body}}
			srv := httptest.NewServer(up.handler())
			defer srv.Close()

			f := NewAlphaVantageFetcher(srv.URL, "demo", "")
			outcome := f.Fetch("AAPL")
			if outcome.Kind != model.OutcomeError {
				t.Fatalf("expected error, got %v", outcome.Kind)
			}
			if outcome.Reason != "no data available" {
				t.Errorf("expected %q, got %q", "no data available", outcome.Reason)
			}
		})
	}
}

func TestFetch_RateLimitOnWeeklySeries(t *testing.T) {
	up := &fakeUpstream{bodies: map[string]string{
		"GLOBAL_QUOTE":                `{"Global Quote": {"05. price": "115.5"}}`,
		"OVERVIEW":                    `{"Name": "Apple Inc"}`,
		"TIME_SERIES_WEEKLY_ADJUSTED": `{"Note": "rate limit"}`,
	}}
	srv := httptest.NewServer(up.handler())
	defer srv.Close()

	f := NewAlphaVantageFetcher(srv.URL, "demo", "")
	outcome := f.Fetch("AAPL")
	if outcome.Kind != model.OutcomeRateLimited {
		t.Fatalf("expected rate limited from the series call, got %v", outcome.Kind)
	}
}
