package risk

import (
	"math"
	"testing"
	"time"

	"finsight/internal/model"
)

func priceSeries(closes ...float64) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return &model.PriceSeries{Symbol: "TEST", Points: points}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimpleReturns(t *testing.T) {
	rets := SimpleReturns(priceSeries(100, 110, 99))
	if len(rets) != 3 {
		t.Fatalf("expected length 3, got %d", len(rets))
	}
	if rets.Present(0) {
		t.Error("first return must be absent")
	}
	if !almostEqual(rets[1], 0.10) {
		t.Errorf("expected 0.10, got %.6f", rets[1])
	}
	if !almostEqual(rets[2], -0.10) {
		t.Errorf("expected -0.10, got %.6f", rets[2])
	}
}

func TestSimpleReturns_NonPositivePriorClose(t *testing.T) {
	rets := SimpleReturns(priceSeries(0, 100, 110))
	if rets.Present(1) {
		t.Error("return after a zero close must be absent, not infinite")
	}
	if !almostEqual(rets[2], 0.10) {
		t.Errorf("expected 0.10, got %.6f", rets[2])
	}
}

func TestLogReturns(t *testing.T) {
	rets := LogReturns(priceSeries(100, 110))
	if rets.Present(0) {
		t.Error("first log return must be absent")
	}
	if !almostEqual(rets[1], math.Log(1.1)) {
		t.Errorf("expected ln(1.1), got %.6f", rets[1])
	}
}

func TestVolatility_WindowAndAnnualization(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	prices := priceSeries(closes...)

	raw, err := Volatility(prices, 21, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	annualized, err := Volatility(prices, 21, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 40 {
		t.Fatalf("expected length 40, got %d", len(raw))
	}
	for i := 0; i < 20; i++ {
		if raw.Present(i) {
			t.Errorf("expected absent volatility at index %d", i)
		}
	}
	for i := range raw {
		if !raw.Present(i) {
			continue
		}
		want := raw[i] * math.Sqrt(TradingDaysPerYear)
		if !almostEqual(annualized[i], want) {
			t.Errorf("index %d: annualized %.8f != raw*sqrt(252) %.8f", i, annualized[i], want)
		}
	}
}

func TestVolatility_RequiresEnoughPresentReturns(t *testing.T) {
	// Zero closes punch holes in the return series; with fewer than 80% of
	// the window present the volatility must be absent.
	closes := make([]float64, 30)
	for i := range closes {
		if i < 12 {
			closes[i] = 0
		} else {
			closes[i] = 100 + float64(i)
		}
	}
	vol, err := Volatility(priceSeries(closes...), 21, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Window ending at index 20 holds returns 0..20, with only 7 present.
	if vol.Present(20) {
		t.Error("expected absent volatility with sparse returns")
	}
}

func TestVolatility_NonPositiveWindow(t *testing.T) {
	if _, err := Volatility(priceSeries(1, 2, 3), 0, false); err == nil {
		t.Error("expected error for window 0")
	}
}
