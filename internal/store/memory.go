package store

import (
	"sort"
	"sync"
	"time"

	"StockTracker/internal/model"
)

type cacheEntry struct {
	quote      model.Quote
	insertedAt time.Time
}

// MemoryStore is an in-process Store used when no database is configured and
// by tests. Same freshness semantics as the SQLite store, nothing survives a
// restart.
type MemoryStore struct {
	ttl time.Duration
	mu  sync.Mutex
	now func() time.Time

	quotes     map[string]cacheEntry
	watchlists map[string][]string
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:        ttl,
		now:        time.Now,
		quotes:     make(map[string]cacheEntry),
		watchlists: make(map[string][]string),
	}
}

func (s *MemoryStore) Lookup(symbol string) (*model.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.quotes[symbol]
	if !ok || s.now().Sub(e.insertedAt) > s.ttl {
		return nil, false
	}
	q := e.quote
	return &q, true
}

func (s *MemoryStore) Store(q *model.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.Symbol] = cacheEntry{quote: *q, insertedAt: s.now()}
	return nil
}

func (s *MemoryStore) AddSymbol(userID, symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.watchlists[userID] {
		if existing == symbol {
			return false, nil
		}
	}
	s.watchlists[userID] = append(s.watchlists[userID], symbol)
	return true, nil
}

func (s *MemoryStore) RemoveSymbol(userID, symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbols := s.watchlists[userID]
	kept := make([]string, 0, len(symbols))
	removed := false
	for _, existing := range symbols {
		if existing == symbol {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	s.watchlists[userID] = kept
	return removed, nil
}

func (s *MemoryStore) ClearWatchlist(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchlists[userID] = nil
	return nil
}

func (s *MemoryStore) Watchlist(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.watchlists[userID]...)
}

func (s *MemoryStore) Popular(limit int) []PopularSymbol {
	s.mu.Lock()
	defer s.mu.Unlock()

	type aged struct {
		PopularSymbol
		at time.Time
	}
	entries := make([]aged, 0, len(s.quotes))
	for sym, e := range s.quotes {
		entries = append(entries, aged{
			PopularSymbol: PopularSymbol{Symbol: sym, CompanyName: e.quote.CompanyName},
			at:            e.insertedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]PopularSymbol, len(entries))
	for i, e := range entries {
		out[i] = e.PopularSymbol
	}
	return out
}

func (s *MemoryStore) Close() error { return nil }
