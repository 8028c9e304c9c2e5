package risk

import (
	"time"

	"finsight/internal/model"
	"finsight/internal/series"
)

// Drawdowns computes the running-peak series and the percentage drawdown
// from that peak at each index. The peak is present from the first point
// onward; drawdown is absent only while the peak is not yet positive.
func Drawdowns(prices *model.PriceSeries) *model.DrawdownPath {
	n := prices.Len()
	peak := series.Make(n)
	drawdown := series.Make(n)
	running := 0.0
	for i, pt := range prices.Points {
		if pt.Close > running {
			running = pt.Close
		}
		peak[i] = running
		if running > 0 {
			drawdown[i] = (pt.Close - running) / running
		}
	}
	return &model.DrawdownPath{Drawdown: drawdown, Peak: peak}
}

// MaxDrawdown walks the price series tracking the single worst drawdown
// episode. The recovery date is recorded when the price reclaims the rolling
// peak while in drawdown, and cleared again if a deeper drawdown follows.
// Returns nil for an empty series.
func MaxDrawdown(prices *model.PriceSeries) *model.MaxDrawdownSummary {
	if prices.Len() == 0 {
		return nil
	}

	var (
		rollingPeak     float64
		rollingPeakDate time.Time
		inDrawdown      bool
		maxDrawdown     float64
		maxDrawdownDate time.Time
		peakDate        time.Time
		recoveryDate    *time.Time
	)

	for _, pt := range prices.Points {
		if pt.Close > rollingPeak {
			rollingPeak = pt.Close
			rollingPeakDate = pt.Date
			if inDrawdown {
				d := pt.Date
				recoveryDate = &d
				inDrawdown = false
			}
		}
		if rollingPeak <= 0 {
			continue
		}
		dd := (pt.Close - rollingPeak) / rollingPeak
		if dd < maxDrawdown {
			maxDrawdown = dd
			maxDrawdownDate = pt.Date
			peakDate = rollingPeakDate
			inDrawdown = true
			// A deeper trough invalidates any earlier recovery.
			recoveryDate = nil
		}
	}

	return &model.MaxDrawdownSummary{
		MaxDrawdown:     maxDrawdown,
		MaxDrawdownDate: maxDrawdownDate,
		PeakDate:        peakDate,
		RecoveryDate:    recoveryDate,
	}
}
