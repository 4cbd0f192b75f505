package store

import "StockTracker/internal/model"

// PopularSymbol is a recently refreshed cache entry, used for suggestions.
type PopularSymbol struct {
	Symbol      string
	CompanyName string
}

// QuoteCache is the freshness-windowed quote store. Lookup returns an entry
// only while it is fresh; a stale entry, a missing entry, and a backing-store
// failure all read as a miss, so the caller re-fetches. Store overwrites any
// prior entry for the symbol.
type QuoteCache interface {
	Lookup(symbol string) (*model.Quote, bool)
	Store(q *model.Quote) error
}

// WatchlistStore persists a per-user insertion-ordered symbol list.
// Watchlist degrades to an empty list when the backing store is unreachable.
type WatchlistStore interface {
	AddSymbol(userID, symbol string) (added bool, err error)
	RemoveSymbol(userID, symbol string) (removed bool, err error)
	ClearWatchlist(userID string) error
	Watchlist(userID string) []string
}

// Store is the full backing-store surface the command wiring needs.
type Store interface {
	QuoteCache
	WatchlistStore
	Popular(limit int) []PopularSymbol
	Close() error
}
