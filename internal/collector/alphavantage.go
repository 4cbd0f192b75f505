package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"StockTracker/internal/calculator"
	"StockTracker/internal/model"
)

const defaultBaseURL = "https://www.alphavantage.co"

// AlphaVantageFetcher builds quotes from the Alpha Vantage REST API. One
// quote needs three dependent calls: GLOBAL_QUOTE for the price, OVERVIEW
// for the company name, and TIME_SERIES_WEEKLY_ADJUSTED for the range.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// Fetch performs the three calls for one symbol and classifies the result.
// Any of the three responses may independently signal quota exhaustion; the
// first one detected short-circuits the remaining calls. A failed name
// lookup degrades to the raw symbol and is never fatal.
func (f *AlphaVantageFetcher) Fetch(symbol string) model.Outcome {
	raw, err := f.query("GLOBAL_QUOTE", symbol)
	if err != nil {
		return model.NewError(fmt.Sprintf("quote request: %v", err))
	}
	kind, reason := classify(raw)
	switch kind {
	case signalError:
		return model.NewError(reason)
	case signalRateLimited:
		return model.NewRateLimited(reason)
	}

	var quoteResp struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(raw, &quoteResp); err != nil {
		return model.NewError(fmt.Sprintf("decode quote: %v", err))
	}
	priceStr, ok := quoteResp.GlobalQuote["05. price"]
	if !ok || len(quoteResp.GlobalQuote) == 0 {
		return model.NewError("no data available")
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return model.NewError(fmt.Sprintf("parse price %q: %v", priceStr, err))
	}

	name, outcome := f.fetchName(symbol)
	if outcome != nil {
		return *outcome
	}

	points, outcome := f.fetchWeeklySeries(symbol)
	if outcome != nil {
		return *outcome
	}
	high, low, err := calculator.WeeklyRange(points)
	if err != nil {
		return model.NewError(fmt.Sprintf("weekly range: %v", err))
	}

	return model.NewSuccess(&model.Quote{
		Symbol:       symbol,
		CurrentPrice: price,
		RangeLow:     low,
		RangeHigh:    high,
		CompanyName:  name,
		FetchedAt:    time.Now(),
	})
}

// fetchName resolves the display name for a symbol. Only a rate-limit signal
// is fatal here; everything else falls back to the raw symbol.
func (f *AlphaVantageFetcher) fetchName(symbol string) (string, *model.Outcome) {
	raw, err := f.query("OVERVIEW", symbol)
	if err != nil {
		log.Printf("[WARN] overview request for %s failed, using symbol as name: %v", symbol, err)
		return symbol, nil
	}
	kind, reason := classify(raw)
	if kind == signalRateLimited {
		o := model.NewRateLimited(reason)
		return "", &o
	}
	if kind == signalError {
		log.Printf("[WARN] overview for %s returned error, using symbol as name: %s", symbol, reason)
		return symbol, nil
	}
	var overview struct {
		Name string `json:"Name"`
	}
	if err := json.Unmarshal(raw, &overview); err != nil || overview.Name == "" {
		return symbol, nil
	}
	return overview.Name, nil
}

func (f *AlphaVantageFetcher) fetchWeeklySeries(symbol string) ([]model.WeeklyPoint, *model.Outcome) {
	raw, err := f.query("TIME_SERIES_WEEKLY_ADJUSTED", symbol)
	if err != nil {
		o := model.NewError(fmt.Sprintf("weekly series request: %v", err))
		return nil, &o
	}
	kind, reason := classify(raw)
	switch kind {
	case signalError:
		o := model.NewError(reason)
		return nil, &o
	case signalRateLimited:
		o := model.NewRateLimited(reason)
		return nil, &o
	}

	var weekly struct {
		Series map[string]struct {
			High string `json:"2. high"`
			Low  string `json:"3. low"`
		} `json:"Weekly Adjusted Time Series"`
	}
	if err := json.Unmarshal(raw, &weekly); err != nil {
		o := model.NewError(fmt.Sprintf("decode weekly series: %v", err))
		return nil, &o
	}
	if len(weekly.Series) == 0 {
		o := model.NewError("no data available")
		return nil, &o
	}

	points := make([]model.WeeklyPoint, 0, len(weekly.Series))
	for dateStr, bar := range weekly.Series {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		high, err := strconv.ParseFloat(bar.High, 64)
		if err != nil {
			continue
		}
		low, err := strconv.ParseFloat(bar.Low, 64)
		if err != nil {
			continue
		}
		points = append(points, model.WeeklyPoint{Date: date, High: high, Low: low})
	}
	if len(points) == 0 {
		o := model.NewError("no data available")
		return nil, &o
	}
	return points, nil
}

func (f *AlphaVantageFetcher) query(function, symbol string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/query?function=%s&symbol=%s&apikey=%s",
		f.BaseURL, function, url.QueryEscape(symbol), url.QueryEscape(f.APIKey))
	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", function, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", function, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d, body: %s", function, resp.StatusCode, string(body))
	}
	return body, nil
}
