// Command ingest backfills price history and fundamentals for a set of
// symbols, then exits. Useful for seeding a fresh database before starting
// the server.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"finsight/internal/collector"
	"finsight/internal/config"
	"finsight/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		symbolsFlag = flag.String("symbols", "", "comma-separated symbols (default: config symbols plus benchmark)")
		daysFlag    = flag.Int("days", 0, "days of history to backfill (default: config backfill_days)")
	)
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env file")
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	symbols := cfg.DataSource.Symbols
	if b := cfg.DataSource.BenchmarkSymbol; b != "" {
		symbols = append(symbols, b)
	}
	if *symbolsFlag != "" {
		symbols = nil
		for _, s := range strings.Split(*symbolsFlag, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
	}
	days := cfg.DataSource.BackfillDays
	if *daysFlag > 0 {
		days = *daysFlag
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] backfilling %d days for %v via %s", days, symbols, fetcher.Name())

	col := collector.NewCollector(fetcher, st)
	if err := col.RefreshAll(symbols, days); err != nil {
		log.Fatalf("[FATAL] backfill: %v", err)
	}
	log.Println("[INFO] backfill complete")
}
