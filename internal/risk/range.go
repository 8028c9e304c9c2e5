package risk

import (
	"errors"

	"finsight/internal/model"
)

// FiftyTwoWeekRange scans the trailing window trading days (not calendar
// days) for the highest high and lowest low, with percent distances measured
// from the last close in the window. Returns nil for an empty series.
func FiftyTwoWeekRange(prices *model.PriceSeries, window int) (*model.FiftyTwoWeekRange, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	n := prices.Len()
	if n == 0 {
		return nil, nil
	}
	start := n - window
	if start < 0 {
		start = 0
	}

	r := &model.FiftyTwoWeekRange{}
	for i := start; i < n; i++ {
		pt := prices.Points[i]
		if i == start || pt.High > r.High {
			r.High = pt.High
			r.HighDate = pt.Date
		}
		if i == start || pt.Low < r.Low {
			r.Low = pt.Low
			r.LowDate = pt.Date
		}
	}

	last := prices.Points[n-1].Close
	if r.High > 0 {
		r.PercentFromHigh = (last - r.High) / r.High * 100
	}
	if r.Low > 0 {
		r.PercentFromLow = (last - r.Low) / r.Low * 100
	}
	return r, nil
}
