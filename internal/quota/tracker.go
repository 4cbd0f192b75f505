// Package quota tracks upstream fetches against the provider's recommended
// daily allowance. The count is advisory: the scheduler keeps running past
// the budget, the tracker only feeds warnings.
package quota

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// State is the persisted daily usage counter. FetchesUsed resets when the
// date rolls over.
type State struct {
	Date        string    `json:"date"`
	FetchesUsed int       `json:"fetches_used"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Tracker counts upstream fetches per calendar day with the count persisted
// to a JSON state file, so restarts within the same day keep the tally.
type Tracker struct {
	mu          sync.Mutex
	state       State
	filePath    string
	dailyBudget int
	now         func() time.Time
}

// NewTracker loads or initializes the state file. A zero dailyBudget
// disables warnings.
func NewTracker(filePath string, dailyBudget int) (*Tracker, error) {
	t := &Tracker{filePath: filePath, dailyBudget: dailyBudget, now: time.Now}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read quota state: %w", err)
		}
	} else if err := json.Unmarshal(data, &t.state); err != nil {
		return nil, fmt.Errorf("parse quota state: %w", err)
	}

	t.rollover()
	return t, nil
}

// rollover resets the counter when the stored date is not today.
// Caller holds no lock during construction; elsewhere mu must be held.
func (t *Tracker) rollover() {
	today := t.now().Format("2006-01-02")
	if t.state.Date != today {
		t.state = State{Date: today}
	}
}

// RecordFetch counts one upstream symbol fetch and returns the new total for
// today.
func (t *Tracker) RecordFetch() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover()
	t.state.FetchesUsed++
	if err := t.save(); err != nil {
		log.Printf("[ERROR] failed to save quota state: %v", err)
	}
	return t.state.FetchesUsed
}

// UsedToday returns the number of upstream fetches recorded today.
func (t *Tracker) UsedToday() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.state.FetchesUsed
}

// Remaining returns how many fetches are left under the daily budget, or -1
// when no budget is configured.
func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dailyBudget <= 0 {
		return -1
	}
	t.rollover()
	left := t.dailyBudget - t.state.FetchesUsed
	if left < 0 {
		left = 0
	}
	return left
}

// Budget returns the configured daily allowance.
func (t *Tracker) Budget() int { return t.dailyBudget }

func (t *Tracker) save() error {
	t.state.UpdatedAt = t.now()
	data, err := json.MarshalIndent(&t.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.filePath, data, 0644)
}
