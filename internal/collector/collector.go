// Package collector fetches market data from an upstream source and persists
// it through the store.
package collector

import (
	"fmt"
	"log"
	"sort"
	"time"

	"finsight/internal/metrics"
	"finsight/internal/model"
)

// PriceSaver is the slice of the store the collector needs.
type PriceSaver interface {
	SavePrices(symbol string, points []model.PricePoint) error
	SaveFundamentals(symbol string, snap *model.FundamentalSnapshot) error
}

// Collector orchestrates fetching and persistence for a set of symbols.
type Collector struct {
	Fetcher Fetcher
	Store   PriceSaver
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, store PriceSaver) *Collector {
	return &Collector{Fetcher: fetcher, Store: store}
}

// Refresh fetches the last days of daily bars plus the current fundamentals
// for one symbol and upserts them. A fundamentals failure is logged but does
// not fail the refresh; price history is the primary payload.
func (c *Collector) Refresh(symbol string, days int) error {
	metrics.IngestRuns.Inc()

	points, err := c.Fetcher.FetchDailyBars(symbol, days)
	if err != nil {
		metrics.IngestErrors.Inc()
		return fmt.Errorf("fetch daily bars %s: %w", symbol, err)
	}
	points = normalize(points)
	if len(points) == 0 {
		metrics.IngestErrors.Inc()
		return fmt.Errorf("fetch daily bars %s: no usable bars", symbol)
	}

	if err := c.Store.SavePrices(symbol, points); err != nil {
		metrics.IngestErrors.Inc()
		return fmt.Errorf("save prices %s: %w", symbol, err)
	}
	metrics.BarsStored.Add(float64(len(points)))
	log.Printf("[INFO] %s: stored %d bars from %s", symbol, len(points), c.Fetcher.Name())

	snap, err := c.Fetcher.FetchFundamentals(symbol)
	if err != nil {
		log.Printf("[WARN] %s: fundamentals fetch failed: %v", symbol, err)
		return nil
	}
	if snap != nil {
		if err := c.Store.SaveFundamentals(symbol, snap); err != nil {
			log.Printf("[WARN] %s: fundamentals save failed: %v", symbol, err)
		}
	}
	return nil
}

// RefreshAll refreshes every symbol, continuing past per-symbol failures.
// The returned error reports how many symbols failed, if any.
func (c *Collector) RefreshAll(symbols []string, days int) error {
	var failed int
	for _, sym := range symbols {
		if err := c.Refresh(sym, days); err != nil {
			log.Printf("[ERROR] refresh %s: %v", sym, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("refresh: %d of %d symbols failed", failed, len(symbols))
	}
	return nil
}

// normalize sorts bars ascending, collapses duplicate dates (last wins), and
// drops bars without a positive close.
func normalize(points []model.PricePoint) []model.PricePoint {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	out := points[:0]
	for _, pt := range points {
		if pt.Close <= 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Date.Equal(pt.Date) {
			out[n-1] = pt
			continue
		}
		out = append(out, pt)
	}
	return out
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars        []model.PricePoint
	Fundamental *model.FundamentalSnapshot
	BarsErr     error
	FundErr     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.PricePoint, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(100, days), nil
}

func (m *MockFetcher) FetchFundamentals(_ string) (*model.FundamentalSnapshot, error) {
	if m.FundErr != nil {
		return nil, m.FundErr
	}
	return m.Fundamental, nil
}

// GenerateMockBars produces a gently trending series of daily bars ending
// today, weekends included.
func GenerateMockBars(basePrice float64, count int) []model.PricePoint {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	bars := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PricePoint{
			Date:   today.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
