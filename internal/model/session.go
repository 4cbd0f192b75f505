package model

import "time"

// RunState tracks the scheduler's lifecycle for one invocation.
type RunState string

const (
	StateIdle              RunState = "IDLE"
	StateRunning           RunState = "RUNNING"
	StateCompleted         RunState = "COMPLETED"
	StateHaltedOnRateLimit RunState = "HALTED_ON_RATE_LIMIT"
)

// SymbolResult pairs a requested symbol with its outcome.
type SymbolResult struct {
	Symbol  string
	Outcome Outcome
}

// Session accumulates the results of one scheduling run. A fresh Session is
// built per invocation and never merged with a previous one. Results are
// appended in exact input-symbol order; when HaltedEarly is set the last
// recorded outcome is RateLimited and all remaining symbols were skipped.
type Session struct {
	Requested   []string
	Results     []SymbolResult
	HaltedEarly bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

// NewSession starts a session for the given ordered symbol list.
func NewSession(symbols []string) *Session {
	return &Session{
		Requested: append([]string(nil), symbols...),
		StartedAt: time.Now(),
	}
}
