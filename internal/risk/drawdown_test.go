package risk

import (
	"testing"

	"finsight/internal/model"
)

func TestDrawdowns_PathInvariants(t *testing.T) {
	prices := priceSeries(100, 95, 105, 90, 110)
	path := Drawdowns(prices)
	if len(path.Drawdown) != 5 || len(path.Peak) != 5 {
		t.Fatalf("expected length 5 series, got %d/%d", len(path.Drawdown), len(path.Peak))
	}
	wantPeak := []float64{100, 100, 105, 105, 110}
	for i, w := range wantPeak {
		if !path.Peak.Present(i) {
			t.Fatalf("peak absent at index %d", i)
		}
		if !almostEqual(path.Peak[i], w) {
			t.Errorf("peak[%d]: expected %.2f, got %.2f", i, w, path.Peak[i])
		}
	}
	for i := range path.Drawdown {
		if !path.Drawdown.Present(i) {
			t.Fatalf("drawdown absent at index %d with positive peak", i)
		}
		if path.Drawdown[i] > 0 {
			t.Errorf("drawdown[%d] = %.4f must be <= 0", i, path.Drawdown[i])
		}
	}
	if !almostEqual(path.Drawdown[3], (90.0-105.0)/105.0) {
		t.Errorf("drawdown[3]: expected %.6f, got %.6f", (90.0-105.0)/105.0, path.Drawdown[3])
	}
}

func TestMaxDrawdown_EmptySeries(t *testing.T) {
	if got := MaxDrawdown(&model.PriceSeries{Symbol: "EMPTY"}); got != nil {
		t.Errorf("expected nil for empty series, got %+v", got)
	}
}

func TestMaxDrawdown_RecoveryRecorded(t *testing.T) {
	// Peak 100, trough 80, then back above the peak.
	prices := priceSeries(100, 90, 80, 95, 101)
	sum := MaxDrawdown(prices)
	if sum == nil {
		t.Fatal("expected a summary")
	}
	if !almostEqual(sum.MaxDrawdown, -0.20) {
		t.Errorf("expected -0.20, got %.4f", sum.MaxDrawdown)
	}
	if !sum.PeakDate.Equal(prices.Points[0].Date) {
		t.Errorf("expected peak date %v, got %v", prices.Points[0].Date, sum.PeakDate)
	}
	if !sum.MaxDrawdownDate.Equal(prices.Points[2].Date) {
		t.Errorf("expected trough date %v, got %v", prices.Points[2].Date, sum.MaxDrawdownDate)
	}
	if sum.RecoveryDate == nil || !sum.RecoveryDate.Equal(prices.Points[4].Date) {
		t.Errorf("expected recovery at %v, got %v", prices.Points[4].Date, sum.RecoveryDate)
	}
}

func TestMaxDrawdown_DeeperTroughInvalidatesRecovery(t *testing.T) {
	// Peak 100 (day 0), trough 80 (day 5, -20%), recovery to 101 (day 10),
	// then a deeper trough 70 (day 15). The worst episode is the second one
	// and the earlier recovery no longer applies.
	closes := []float64{100, 96, 92, 88, 84, 80, 85, 90, 95, 99, 101, 95, 88, 82, 76, 70}
	prices := priceSeries(closes...)
	sum := MaxDrawdown(prices)
	if sum == nil {
		t.Fatal("expected a summary")
	}
	wantDD := (70.0 - 101.0) / 101.0
	if !almostEqual(sum.MaxDrawdown, wantDD) {
		t.Errorf("expected %.4f, got %.4f", wantDD, sum.MaxDrawdown)
	}
	if sum.MaxDrawdown > -0.30 {
		t.Errorf("expected max drawdown at least -30%%, got %.4f", sum.MaxDrawdown)
	}
	if !sum.MaxDrawdownDate.Equal(prices.Points[15].Date) {
		t.Errorf("expected trough date day 15, got %v", sum.MaxDrawdownDate)
	}
	if !sum.PeakDate.Equal(prices.Points[10].Date) {
		t.Errorf("expected peak date day 10, got %v", sum.PeakDate)
	}
	if sum.RecoveryDate != nil {
		t.Errorf("deeper trough must clear the earlier recovery, got %v", *sum.RecoveryDate)
	}
}

func TestMaxDrawdown_MonotonicRise(t *testing.T) {
	sum := MaxDrawdown(priceSeries(100, 101, 102, 103))
	if sum == nil {
		t.Fatal("expected a summary")
	}
	if sum.MaxDrawdown != 0 {
		t.Errorf("expected zero drawdown, got %.4f", sum.MaxDrawdown)
	}
	if sum.RecoveryDate != nil {
		t.Errorf("expected nil recovery date, got %v", *sum.RecoveryDate)
	}
}
