package indicator

import (
	"testing"
)

func TestMACD_Alignment(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	prices := priceSeries(closes...)
	res, err := MACD(prices, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.MACD) != 60 || len(res.Signal) != 60 || len(res.Histogram) != 60 {
		t.Fatalf("expected all series of length 60, got %d/%d/%d",
			len(res.MACD), len(res.Signal), len(res.Histogram))
	}
	// MACD needs the slow EMA: first present at index slow-1 = 25.
	for i := 0; i < 25; i++ {
		if res.MACD.Present(i) {
			t.Errorf("expected absent MACD at index %d", i)
		}
	}
	if !res.MACD.Present(25) {
		t.Error("expected MACD present at index 25")
	}
	// Signal seeds after 9 present MACD values: index 25+8 = 33.
	for i := 0; i < 33; i++ {
		if res.Signal.Present(i) {
			t.Errorf("expected absent signal at index %d", i)
		}
	}
	if !res.Signal.Present(33) {
		t.Error("expected signal present at index 33")
	}
	// Histogram is present exactly where both operands are.
	for i := range res.Histogram {
		want := res.MACD.Present(i) && res.Signal.Present(i)
		if res.Histogram.Present(i) != want {
			t.Errorf("histogram presence mismatch at index %d", i)
		}
	}
}

func TestMACD_SignalSeedIsMeanOfFirstNine(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i%13)*1.5
	}
	prices := priceSeries(closes...)
	res, err := MACD(prices, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0.0
	for i := 25; i <= 33; i++ {
		if !res.MACD.Present(i) {
			t.Fatalf("expected MACD present at index %d", i)
		}
		sum += res.MACD[i]
	}
	if !almostEqual(res.Signal[33], sum/9.0) {
		t.Errorf("signal seed: expected %.6f, got %.6f", sum/9.0, res.Signal[33])
	}
}

func TestMACD_HistogramIsDifference(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 200 - float64(i%9)
	}
	res, err := MACD(priceSeries(closes...), 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range res.Histogram {
		if !res.Histogram.Present(i) {
			continue
		}
		if !almostEqual(res.Histogram[i], res.MACD[i]-res.Signal[i]) {
			t.Errorf("histogram[%d] != macd-signal", i)
		}
	}
}

func TestMACD_ShortSeries(t *testing.T) {
	res, err := MACD(priceSeries(1, 2, 3, 4, 5), 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MACD.CountPresent() != 0 || res.Signal.CountPresent() != 0 {
		t.Error("expected entirely absent MACD for a 5-point series")
	}
}

func TestMACD_NonPositivePeriods(t *testing.T) {
	if _, err := MACD(priceSeries(1, 2, 3), 0, 26, 9); err == nil {
		t.Error("expected error for fast period 0")
	}
	if _, err := MACD(priceSeries(1, 2, 3), 12, -1, 9); err == nil {
		t.Error("expected error for negative slow period")
	}
	if _, err := MACD(priceSeries(1, 2, 3), 12, 26, 0); err == nil {
		t.Error("expected error for signal period 0")
	}
}
