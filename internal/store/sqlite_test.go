package store

import (
	"path/filepath"
	"testing"
	"time"

	"finsight/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestSavePricesAndLoad(t *testing.T) {
	s := openTestStore(t)
	points := []model.PricePoint{
		{Date: day(2), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Date: day(3), Open: 10.5, High: 12, Low: 10, Close: 11.5, Volume: 200},
		{Date: day(4), Open: 11.5, High: 13, Low: 11, Close: 12.5, Volume: 300},
	}
	if err := s.SavePrices("AAPL", points); err != nil {
		t.Fatalf("save prices: %v", err)
	}

	series, err := s.PriceSeries("AAPL", 0)
	if err != nil {
		t.Fatalf("load prices: %v", err)
	}
	if series.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", series.Len())
	}
	if err := series.Validate(); err != nil {
		t.Errorf("loaded series must be ascending: %v", err)
	}
	if series.Points[1].Close != 11.5 {
		t.Errorf("expected close 11.5, got %.2f", series.Points[1].Close)
	}
}

func TestSavePrices_UpsertReplacesRow(t *testing.T) {
	s := openTestStore(t)
	if err := s.SavePrices("AAPL", []model.PricePoint{{Date: day(2), Close: 10}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SavePrices("AAPL", []model.PricePoint{{Date: day(2), Close: 20}}); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	series, err := s.PriceSeries("AAPL", 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if series.Len() != 1 || series.Points[0].Close != 20 {
		t.Errorf("expected one row with close 20, got %+v", series.Points)
	}
}

func TestPriceSeries_LimitTakesNewest(t *testing.T) {
	s := openTestStore(t)
	var points []model.PricePoint
	for i := 2; i <= 11; i++ {
		points = append(points, model.PricePoint{Date: day(i), Close: float64(i)})
	}
	if err := s.SavePrices("AAPL", points); err != nil {
		t.Fatalf("save: %v", err)
	}
	series, err := s.PriceSeries("AAPL", 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if series.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", series.Len())
	}
	if series.Points[0].Close != 9 || series.Points[2].Close != 11 {
		t.Errorf("expected newest 3 in ascending order, got %+v", series.Points)
	}
}

func TestPriceSeries_UnknownSymbolIsEmpty(t *testing.T) {
	s := openTestStore(t)
	series, err := s.PriceSeries("NOPE", 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if series.Len() != 0 {
		t.Errorf("expected empty series, got %d points", series.Len())
	}
}

func TestFundamentalsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.LatestFundamentals("AAPL")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if snap != nil {
		t.Fatalf("expected nil before ingestion, got %+v", snap)
	}

	pe := 21.5
	margin := 0.24
	in := &model.FundamentalSnapshot{Date: day(5), TrailingPE: &pe, ProfitMargins: &margin}
	if err := s.SaveFundamentals("AAPL", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LatestFundamentals("AAPL")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out == nil {
		t.Fatal("expected a snapshot")
	}
	if out.TrailingPE == nil || *out.TrailingPE != pe {
		t.Errorf("trailing PE mismatch: %v", out.TrailingPE)
	}
	if out.PEGRatio != nil {
		t.Errorf("expected nil PEG, got %v", *out.PEGRatio)
	}
	if !out.Date.Equal(day(5)) {
		t.Errorf("date mismatch: %v", out.Date)
	}
}

func TestSymbols(t *testing.T) {
	s := openTestStore(t)
	for _, sym := range []string{"MSFT", "AAPL"} {
		if err := s.SavePrices(sym, []model.PricePoint{{Date: day(2), Close: 1}}); err != nil {
			t.Fatalf("save %s: %v", sym, err)
		}
	}
	symbols, err := s.Symbols()
	if err != nil {
		t.Fatalf("symbols: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "MSFT" {
		t.Errorf("expected sorted [AAPL MSFT], got %v", symbols)
	}
}
