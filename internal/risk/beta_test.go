package risk

import (
	"math"
	"testing"
	"time"

	"finsight/internal/model"
)

func wavySeries(n int, phase float64) *model.PriceSeries {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5+phase) + float64(i)*0.05
	}
	return priceSeries(closes...)
}

func TestBeta_IdenticalSeriesIsOne(t *testing.T) {
	stock := wavySeries(120, 0)
	bench := wavySeries(120, 0)
	beta, err := Beta(stock, bench, DefaultBetaLookback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if beta == nil {
		t.Fatal("expected a beta value")
	}
	if math.Abs(*beta-1.0) > 1e-9 {
		t.Errorf("expected beta 1.0 for identical series, got %.6f", *beta)
	}
}

func TestBeta_ZeroBenchmarkVariance(t *testing.T) {
	stock := wavySeries(120, 0)
	flat := make([]float64, 120)
	for i := range flat {
		flat[i] = 100
	}
	beta, err := Beta(stock, priceSeries(flat...), DefaultBetaLookback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if beta != nil {
		t.Errorf("expected nil beta for zero-variance benchmark, got %.6f", *beta)
	}
}

func TestBeta_InsufficientOverlap(t *testing.T) {
	stock := wavySeries(120, 0)
	// Benchmark on a disjoint calendar: no overlapping dates at all.
	benchPoints := make([]model.PricePoint, 120)
	start := time.Date(2010, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range benchPoints {
		benchPoints[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: 100 + float64(i)}
	}
	beta, err := Beta(stock, &model.PriceSeries{Symbol: "BENCH", Points: benchPoints}, DefaultBetaLookback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if beta != nil {
		t.Errorf("expected nil beta without overlapping dates, got %.6f", *beta)
	}
}

func TestBeta_DateAlignment(t *testing.T) {
	// Benchmark missing every 7th day still aligns by date, not index.
	stock := wavySeries(120, 0)
	var benchPoints []model.PricePoint
	for i, pt := range stock.Points {
		if i%7 == 3 {
			continue
		}
		benchPoints = append(benchPoints, model.PricePoint{Date: pt.Date, Close: pt.Close})
	}
	beta, err := Beta(stock, &model.PriceSeries{Symbol: "BENCH", Points: benchPoints}, DefaultBetaLookback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if beta == nil {
		t.Fatal("expected a beta value")
	}
	if math.Abs(*beta-1.0) > 1e-9 {
		t.Errorf("expected beta 1.0 on aligned identical closes, got %.6f", *beta)
	}
}

func TestBeta_NonPositiveLookback(t *testing.T) {
	if _, err := Beta(wavySeries(120, 0), wavySeries(120, 0), 0); err == nil {
		t.Error("expected error for lookback 0")
	}
}
