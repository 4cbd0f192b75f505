package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"StockTracker/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the quote cache and user watchlists to SQLite.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database, runs migrations, and sets
// the cache freshness window.
func NewSQLiteStore(dbPath string, ttl time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so watch-mode refreshes don't block ad-hoc reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, ttl: ttl, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_cache (
			symbol        TEXT PRIMARY KEY,
			current_price REAL,
			week_52_low   REAL,
			week_52_high  REAL,
			company_name  TEXT,
			updated_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cache_updated ON stock_cache(updated_at)`,

		`CREATE TABLE IF NOT EXISTS user_watchlists (
			user_id    TEXT PRIMARY KEY,
			watchlist  TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// Lookup returns the cached quote for symbol if it was stored within the
// freshness window. Staleness is evaluated here at read time; nothing evicts
// stale rows, the next Store simply overwrites them.
func (s *SQLiteStore) Lookup(symbol string) (*model.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl).Unix()
	row := s.db.QueryRow(`SELECT current_price, week_52_low, week_52_high, company_name, updated_at
		FROM stock_cache WHERE symbol = ? AND updated_at >= ?`, symbol, cutoff)

	var q model.Quote
	var updatedAt int64
	err := row.Scan(&q.CurrentPrice, &q.RangeLow, &q.RangeHigh, &q.CompanyName, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("[WARN] cache lookup for %s failed, treating as miss: %v", symbol, err)
		return nil, false
	}
	q.Symbol = symbol
	q.FetchedAt = time.Unix(updatedAt, 0)
	return &q, true
}

// Store upserts the quote keyed by symbol, last write wins.
func (s *SQLiteStore) Store(q *model.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO stock_cache
		(symbol, current_price, week_52_low, week_52_high, company_name, updated_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(symbol) DO UPDATE SET
			current_price = excluded.current_price,
			week_52_low   = excluded.week_52_low,
			week_52_high  = excluded.week_52_high,
			company_name  = excluded.company_name,
			updated_at    = excluded.updated_at`,
		q.Symbol, q.CurrentPrice, q.RangeLow, q.RangeHigh, q.CompanyName, s.now().Unix(),
	)
	return err
}

func (s *SQLiteStore) loadWatchlist(userID string) ([]string, error) {
	row := s.db.QueryRow(`SELECT watchlist FROM user_watchlists WHERE user_id = ?`, userID)
	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var symbols []string
	if err := json.Unmarshal([]byte(raw), &symbols); err != nil {
		return nil, fmt.Errorf("decode watchlist: %w", err)
	}
	return symbols, nil
}

func (s *SQLiteStore) saveWatchlist(userID string, symbols []string) error {
	if symbols == nil {
		symbols = []string{}
	}
	raw, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO user_watchlists (user_id, watchlist, updated_at)
		VALUES (?,?,?)
		ON CONFLICT(user_id) DO UPDATE SET
			watchlist  = excluded.watchlist,
			updated_at = excluded.updated_at`,
		userID, string(raw), s.now().Unix(),
	)
	return err
}

// AddSymbol appends the symbol to the user's watchlist. Adding a symbol that
// is already present is a no-op.
func (s *SQLiteStore) AddSymbol(userID, symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbols, err := s.loadWatchlist(userID)
	if err != nil {
		return false, err
	}
	for _, existing := range symbols {
		if existing == symbol {
			return false, nil
		}
	}
	return true, s.saveWatchlist(userID, append(symbols, symbol))
}

// RemoveSymbol drops the symbol from the user's watchlist if present.
func (s *SQLiteStore) RemoveSymbol(userID, symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbols, err := s.loadWatchlist(userID)
	if err != nil {
		return false, err
	}
	kept := symbols[:0]
	removed := false
	for _, existing := range symbols {
		if existing == symbol {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		return false, nil
	}
	return true, s.saveWatchlist(userID, kept)
}

// ClearWatchlist empties the user's watchlist.
func (s *SQLiteStore) ClearWatchlist(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveWatchlist(userID, nil)
}

// Watchlist returns the user's symbols in insertion order. A read failure
// degrades to an empty list.
func (s *SQLiteStore) Watchlist(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbols, err := s.loadWatchlist(userID)
	if err != nil {
		log.Printf("[WARN] watchlist read for %s failed, returning empty: %v", userID, err)
		return nil
	}
	return symbols
}

// Popular returns the most recently refreshed cache entries.
func (s *SQLiteStore) Popular(limit int) []PopularSymbol {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol, company_name FROM stock_cache
		ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		log.Printf("[WARN] popular symbols query failed: %v", err)
		return nil
	}
	defer rows.Close()

	var out []PopularSymbol
	for rows.Next() {
		var p PopularSymbol
		if err := rows.Scan(&p.Symbol, &p.CompanyName); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
