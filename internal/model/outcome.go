package model

// OutcomeKind tags the result of processing a single symbol.
type OutcomeKind string

const (
	OutcomeSuccess     OutcomeKind = "SUCCESS"
	OutcomeCacheHit    OutcomeKind = "CACHE_HIT"
	OutcomeError       OutcomeKind = "ERROR"
	OutcomeRateLimited OutcomeKind = "RATE_LIMITED"
)

// Outcome is the per-symbol result of a fetch attempt. Exactly one kind is
// active; Quote is set for Success and CacheHit, Reason for Error and
// RateLimited. Reason stays free-text because the upstream signals with
// free-text advisory fields.
type Outcome struct {
	Kind   OutcomeKind
	Quote  *Quote
	Reason string
}

// NewSuccess wraps a freshly fetched quote.
func NewSuccess(q *Quote) Outcome { return Outcome{Kind: OutcomeSuccess, Quote: q} }

// NewCacheHit wraps a quote served from the cache without an upstream call.
func NewCacheHit(q *Quote) Outcome { return Outcome{Kind: OutcomeCacheHit, Quote: q} }

// NewError records a per-symbol failure; the run continues.
func NewError(reason string) Outcome { return Outcome{Kind: OutcomeError, Reason: reason} }

// NewRateLimited records a quota-exhaustion signal; the run halts.
func NewRateLimited(reason string) Outcome {
	return Outcome{Kind: OutcomeRateLimited, Reason: reason}
}

// HasQuote reports whether the outcome carries usable quote data.
func (o Outcome) HasQuote() bool {
	return (o.Kind == OutcomeSuccess || o.Kind == OutcomeCacheHit) && o.Quote != nil
}
