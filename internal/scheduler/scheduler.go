// Package scheduler drives the quota-aware fetch loop: planned batches,
// paced upstream calls, cache lookups, and an immediate halt when the
// upstream signals quota exhaustion.
package scheduler

import (
	"log"
	"time"

	"StockTracker/internal/collector"
	"StockTracker/internal/model"
	"StockTracker/internal/planner"
	"StockTracker/internal/quota"
	"StockTracker/internal/report"
	"StockTracker/internal/store"
)

// Config holds the pacing constants for one scheduler.
type Config struct {
	BatchSize      int
	PerSymbolDelay time.Duration
	InterBatchWait time.Duration
}

// DefaultConfig matches the upstream free tier: five calls per minute with
// 12-second spacing and a full minute between batches.
func DefaultConfig() Config {
	return Config{
		BatchSize:      planner.DefaultBatchSize,
		PerSymbolDelay: 12 * time.Second,
		InterBatchWait: 60 * time.Second,
	}
}

// Scheduler is a single logical worker. Upstream calls are strictly
// sequential: the quota is a global per-minute ceiling, so parallel fetches
// would both violate it and blur which symbol tripped a rate limit.
type Scheduler struct {
	Fetcher collector.Fetcher
	Cache   store.QuoteCache
	Quota   *quota.Tracker
	Config  Config

	// Sleep is the wait policy for both pacing points. Tests substitute a
	// recording zero-wait function.
	Sleep func(time.Duration)

	state model.RunState
}

// NewScheduler wires a scheduler with the real clock.
func NewScheduler(fetcher collector.Fetcher, cache store.QuoteCache, cfg Config) *Scheduler {
	return &Scheduler{
		Fetcher: fetcher,
		Cache:   cache,
		Config:  cfg,
		Sleep:   time.Sleep,
		state:   model.StateIdle,
	}
}

// State returns the lifecycle state of the most recent run.
func (s *Scheduler) State() model.RunState { return s.state }

// Estimate returns the worst-case wall time for fetching the given symbols
// under this scheduler's pacing constants.
func (s *Scheduler) Estimate(symbols []string) time.Duration {
	return planner.Estimate(len(symbols), s.Config.BatchSize, s.Config.PerSymbolDelay, s.Config.InterBatchWait)
}

// Run processes the symbols in planned batch order and returns the session.
// Per-symbol errors are recorded and the run continues; a RateLimited
// outcome from any of the upstream calls aborts all remaining symbols and
// batches so the rest of the daily quota survives for a later run.
func (s *Scheduler) Run(symbols []string) *model.Session {
	session := model.NewSession(symbols)
	if len(symbols) == 0 {
		session.FinishedAt = time.Now()
		return session
	}

	s.state = model.StateRunning
	batches := planner.Plan(symbols, s.Config.BatchSize)
	log.Printf("[INFO] scheduling %d symbols in %d batches (estimated %s)",
		len(symbols), len(batches), s.Estimate(symbols))

	for bi, batch := range batches {
		for si, symbol := range batch {
			fromCache := s.processSymbol(session, symbol)
			if session.HaltedEarly {
				s.state = model.StateHaltedOnRateLimit
				session.FinishedAt = time.Now()
				log.Printf("[WARN] run halted on rate limit after %d/%d symbols",
					len(session.Results), len(symbols))
				return session
			}
			// Cache hits burn no quota and need no spacing.
			if si < len(batch)-1 && !fromCache {
				s.Sleep(s.Config.PerSymbolDelay)
			}
		}
		if bi < len(batches)-1 {
			log.Printf("[INFO] batch %d/%d done, waiting %s before next batch",
				bi+1, len(batches), s.Config.InterBatchWait)
			s.Sleep(s.Config.InterBatchWait)
		}
	}

	s.state = model.StateCompleted
	session.FinishedAt = time.Now()
	return session
}

// processSymbol resolves one symbol via cache or upstream and records the
// outcome. It reports whether the cache served the symbol.
func (s *Scheduler) processSymbol(session *model.Session, symbol string) (fromCache bool) {
	if q, ok := s.Cache.Lookup(symbol); ok {
		log.Printf("[INFO] %s served from cache (fetched %s)", symbol, q.FetchedAt.Format("15:04:05"))
		report.Record(session, symbol, model.NewCacheHit(q))
		return true
	}

	outcome := s.Fetcher.Fetch(symbol)
	if s.Quota != nil {
		used := s.Quota.RecordFetch()
		if budget := s.Quota.Budget(); budget > 0 && used > budget {
			log.Printf("[WARN] daily fetch budget exceeded: %d/%d", used, budget)
		}
	}

	switch outcome.Kind {
	case model.OutcomeSuccess:
		if err := s.Cache.Store(outcome.Quote); err != nil {
			log.Printf("[WARN] cache write for %s failed: %v", symbol, err)
		}
	case model.OutcomeError:
		log.Printf("[WARN] fetch %s: %s", symbol, outcome.Reason)
	case model.OutcomeRateLimited:
		session.HaltedEarly = true
	}
	report.Record(session, symbol, outcome)
	return false
}
