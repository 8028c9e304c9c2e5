// Package store persists price and fundamental data in SQLite. The engine
// itself never touches the store; callers load series here and pass them to
// the pure computation packages by value.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"finsight/internal/model"
)

const dateLayout = "2006-01-02"

// Store wraps the SQLite database holding assets, daily prices, and
// fundamentals.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so HTTP reads are not blocked by the ingestion writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL UNIQUE,
			name       TEXT,
			asset_type TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS daily_prices (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			asset_id INTEGER NOT NULL REFERENCES assets(id),
			date     TEXT NOT NULL,
			open     REAL,
			high     REAL,
			low      REAL,
			close    REAL,
			volume   REAL,
			UNIQUE(asset_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_asset_date ON daily_prices(asset_id, date)`,

		`CREATE TABLE IF NOT EXISTS fundamentals (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			asset_id          INTEGER NOT NULL REFERENCES assets(id),
			date              TEXT NOT NULL,
			market_cap        REAL,
			trailing_pe       REAL,
			forward_pe        REAL,
			peg_ratio         REAL,
			price_to_book     REAL,
			price_to_sales    REAL,
			profit_margins    REAL,
			operating_margins REAL,
			revenue_growth    REAL,
			earnings_growth   REAL,
			trailing_eps      REAL,
			forward_eps       REAL,
			dividend_yield    REAL,
			dividend_rate     REAL,
			payout_ratio      REAL,
			UNIQUE(asset_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fundamentals_asset_date ON fundamentals(asset_id, date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// getOrCreateAsset returns the asset id for symbol, inserting a row if needed.
func (s *Store) getOrCreateAsset(symbol string) (int64, error) {
	var id int64
	err := s.db.QueryRow("SELECT id FROM assets WHERE symbol = ?", symbol).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup asset %s: %w", symbol, err)
	}
	res, err := s.db.Exec("INSERT INTO assets (symbol, name, asset_type) VALUES (?, ?, ?)",
		symbol, symbol, "stock")
	if err != nil {
		return 0, fmt.Errorf("insert asset %s: %w", symbol, err)
	}
	return res.LastInsertId()
}

// SavePrices upserts daily bars for a symbol. Re-ingesting the same date
// replaces the existing row.
func (s *Store) SavePrices(symbol string, points []model.PricePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assetID, err := s.getOrCreateAsset(symbol)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO daily_prices
		(asset_id, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, pt := range points {
		if _, err := stmt.Exec(assetID, pt.Date.Format(dateLayout),
			pt.Open, pt.High, pt.Low, pt.Close, pt.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert price %s %s: %w", symbol, pt.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// SaveFundamentals upserts a fundamental snapshot for a symbol.
func (s *Store) SaveFundamentals(symbol string, snap *model.FundamentalSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assetID, err := s.getOrCreateAsset(symbol)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO fundamentals
		(asset_id, date, market_cap, trailing_pe, forward_pe, peg_ratio,
		 price_to_book, price_to_sales, profit_margins, operating_margins,
		 revenue_growth, earnings_growth, trailing_eps, forward_eps,
		 dividend_yield, dividend_rate, payout_ratio)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		assetID, snap.Date.Format(dateLayout),
		nullable(snap.MarketCap), nullable(snap.TrailingPE), nullable(snap.ForwardPE),
		nullable(snap.PEGRatio), nullable(snap.PriceToBook), nullable(snap.PriceToSales),
		nullable(snap.ProfitMargins), nullable(snap.OperatingMargins),
		nullable(snap.RevenueGrowth), nullable(snap.EarningsGrowth),
		nullable(snap.TrailingEPS), nullable(snap.ForwardEPS),
		nullable(snap.DividendYield), nullable(snap.DividendRate), nullable(snap.PayoutRatio),
	)
	if err != nil {
		return fmt.Errorf("insert fundamentals %s: %w", symbol, err)
	}
	return nil
}

// PriceSeries loads a symbol's daily bars in ascending date order. With a
// positive limit only the most recent limit bars are returned. An unknown
// symbol yields an empty series, not an error.
func (s *Store) PriceSeries(symbol string, limit int) (*model.PriceSeries, error) {
	query := `SELECT p.date, p.open, p.high, p.low, p.close, p.volume
		FROM daily_prices p JOIN assets a ON a.id = p.asset_id
		WHERE a.symbol = ? ORDER BY p.date`
	args := []any{symbol}
	if limit > 0 {
		// Take the newest rows, then flip back to ascending.
		query = `SELECT date, open, high, low, close, volume FROM (
			SELECT p.date, p.open, p.high, p.low, p.close, p.volume
			FROM daily_prices p JOIN assets a ON a.id = p.asset_id
			WHERE a.symbol = ? ORDER BY p.date DESC LIMIT ?
		) ORDER BY date`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prices %s: %w", symbol, err)
	}
	defer rows.Close()

	series := &model.PriceSeries{Symbol: symbol}
	for rows.Next() {
		var dateStr string
		var pt model.PricePoint
		if err := rows.Scan(&dateStr, &pt.Open, &pt.High, &pt.Low, &pt.Close, &pt.Volume); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		pt.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, err
		}
		series.Points = append(series.Points, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price rows: %w", err)
	}
	return series, nil
}

// LatestFundamentals loads the most recent fundamental snapshot for a
// symbol, or nil if none has been ingested.
func (s *Store) LatestFundamentals(symbol string) (*model.FundamentalSnapshot, error) {
	row := s.db.QueryRow(`SELECT f.date, f.market_cap, f.trailing_pe, f.forward_pe,
			f.peg_ratio, f.price_to_book, f.price_to_sales, f.profit_margins,
			f.operating_margins, f.revenue_growth, f.earnings_growth,
			f.trailing_eps, f.forward_eps, f.dividend_yield, f.dividend_rate, f.payout_ratio
		FROM fundamentals f JOIN assets a ON a.id = f.asset_id
		WHERE a.symbol = ? ORDER BY f.date DESC LIMIT 1`, symbol)

	var dateStr string
	var cols [15]sql.NullFloat64
	err := row.Scan(&dateStr, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5],
		&cols[6], &cols[7], &cols[8], &cols[9], &cols[10], &cols[11], &cols[12], &cols[13], &cols[14])
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query fundamentals %s: %w", symbol, err)
	}

	snap := &model.FundamentalSnapshot{}
	snap.Date, err = parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	snap.MarketCap = floatPtr(cols[0])
	snap.TrailingPE = floatPtr(cols[1])
	snap.ForwardPE = floatPtr(cols[2])
	snap.PEGRatio = floatPtr(cols[3])
	snap.PriceToBook = floatPtr(cols[4])
	snap.PriceToSales = floatPtr(cols[5])
	snap.ProfitMargins = floatPtr(cols[6])
	snap.OperatingMargins = floatPtr(cols[7])
	snap.RevenueGrowth = floatPtr(cols[8])
	snap.EarningsGrowth = floatPtr(cols[9])
	snap.TrailingEPS = floatPtr(cols[10])
	snap.ForwardEPS = floatPtr(cols[11])
	snap.DividendYield = floatPtr(cols[12])
	snap.DividendRate = floatPtr(cols[13])
	snap.PayoutRatio = floatPtr(cols[14])
	return snap, nil
}

// Symbols lists all ingested symbols.
func (s *Store) Symbols() ([]string, error) {
	rows, err := s.db.Query("SELECT symbol FROM assets ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
