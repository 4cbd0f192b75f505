package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"StockTracker/internal/collector"
	"StockTracker/internal/config"
	"StockTracker/internal/model"
	"StockTracker/internal/quota"
	"StockTracker/internal/report"
	"StockTracker/internal/scheduler"
	"StockTracker/internal/store"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	csvPath := flag.String("csv", "", "write the session summary to this CSV file")
	watch := flag.Bool("watch", false, "keep running and refresh on the configured cron schedule")
	flag.Usage = usage
	flag.Parse()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	// Open the backing store; degrade to in-memory when SQLite is unavailable.
	var st store.Store
	if sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath, cfg.CacheTTL()); err != nil {
		log.Printf("[WARN] init sqlite store failed, using in-memory store: %v", err)
		st = store.NewMemoryStore(cfg.CacheTTL())
	} else {
		st = sq
	}
	defer st.Close()

	userID := cfg.Watchlist.UserID
	if userID == "" {
		userID = uuid.NewString()
		log.Printf("[INFO] no user id configured, generated %s for this session", userID)
	}

	// Watchlist subcommands run against the store only, no API key needed.
	if args := flag.Args(); len(args) > 0 {
		switch args[0] {
		case "watchlist":
			runWatchlistCommand(st, userID, args[1:])
			return
		case "popular":
			for _, p := range st.Popular(5) {
				fmt.Printf("%s\t%s\n", p.Symbol, p.CompanyName)
			}
			return
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	symbols := symbolsFromArgs(flag.Args())
	if len(symbols) == 0 {
		symbols = st.Watchlist(userID)
		if len(symbols) == 0 {
			log.Fatal("[FATAL] no symbols given and the watchlist is empty")
		}
		log.Printf("[INFO] using %d watchlist symbols", len(symbols))
	}

	qt, err := quota.NewTracker(cfg.Quota.StateFile, cfg.Limits.DailyFetchBudget)
	if err != nil {
		log.Printf("[WARN] init quota tracker failed, warnings disabled: %v", err)
	}

	fetcher := collector.NewAlphaVantageFetcher(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	sched := scheduler.NewScheduler(fetcher, st, scheduler.Config{
		BatchSize:      cfg.Limits.BatchSize,
		PerSymbolDelay: cfg.PerSymbolDelay(),
		InterBatchWait: cfg.InterBatchWait(),
	})
	sched.Quota = qt

	if qt != nil {
		if remaining := qt.Remaining(); remaining >= 0 && len(symbols) > remaining {
			log.Printf("[WARN] requesting %d symbols with only %d of today's %d-fetch budget left",
				len(symbols), remaining, qt.Budget())
		}
	}

	runOnce := func() {
		session := sched.Run(symbols)
		fmt.Print(report.FormatSession(session))
		if *csvPath != "" {
			if err := writeCSVFile(*csvPath, session); err != nil {
				log.Printf("[ERROR] write csv: %v", err)
			} else {
				log.Printf("[INFO] summary written to %s", *csvPath)
			}
		}
	}

	if !*watch {
		runOnce()
		return
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Schedule.RefreshCron, runOnce); err != nil {
		log.Fatalf("[FATAL] register refresh cron: %v", err)
	}
	c.Start()
	defer c.Stop()
	log.Printf("[INFO] watch mode: refreshing on %q, press Ctrl+C to stop", cfg.Schedule.RefreshCron)

	runOnce()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] shutdown signal received, stopping")
}

func runWatchlistCommand(st store.Store, userID string, args []string) {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "add":
		for _, symbol := range symbolsFromArgs(args[1:]) {
			added, err := st.AddSymbol(userID, symbol)
			switch {
			case err != nil:
				log.Printf("[ERROR] add %s: %v", symbol, err)
			case added:
				fmt.Printf("added %s\n", symbol)
			default:
				fmt.Printf("%s already on watchlist\n", symbol)
			}
		}
	case "remove":
		for _, symbol := range symbolsFromArgs(args[1:]) {
			removed, err := st.RemoveSymbol(userID, symbol)
			switch {
			case err != nil:
				log.Printf("[ERROR] remove %s: %v", symbol, err)
			case removed:
				fmt.Printf("removed %s\n", symbol)
			default:
				fmt.Printf("%s not on watchlist\n", symbol)
			}
		}
	case "clear":
		if err := st.ClearWatchlist(userID); err != nil {
			log.Printf("[ERROR] clear watchlist: %v", err)
			return
		}
		fmt.Println("watchlist cleared")
	case "show":
		symbols := st.Watchlist(userID)
		if len(symbols) == 0 {
			fmt.Println("watchlist is empty")
			return
		}
		fmt.Println(strings.Join(symbols, ", "))
	default:
		usage()
	}
}

// symbolsFromArgs accepts both space- and comma-separated symbols and
// uppercases them.
func symbolsFromArgs(args []string) []string {
	var symbols []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
				symbols = append(symbols, s)
			}
		}
	}
	return symbols
}

func writeCSVFile(path string, session *model.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteCSV(f, session)
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  tracker [flags] [SYMBOL ...]        fetch quotes (falls back to watchlist)
  tracker watchlist add SYMBOL ...    add symbols to the watchlist
  tracker watchlist remove SYMBOL ... remove symbols from the watchlist
  tracker watchlist clear             empty the watchlist
  tracker watchlist show              print the watchlist
  tracker popular                     print recently refreshed symbols

flags:
`)
	flag.PrintDefaults()
}
