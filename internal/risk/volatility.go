package risk

import (
	"errors"
	"math"

	"finsight/internal/model"
	"finsight/internal/series"
)

// Volatility computes the rolling sample standard deviation of simple
// returns over a trailing window. A position is absent unless at least 80%
// of the window's returns are present. With annualize set, values are scaled
// by sqrt(252).
func Volatility(prices *model.PriceSeries, window int, annualize bool) (series.Series, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	returns := SimpleReturns(prices)
	out := series.Make(len(returns))
	for i := window - 1; i < len(returns); i++ {
		var vals []float64
		for j := i - window + 1; j <= i; j++ {
			if returns.Present(j) {
				vals = append(vals, returns[j])
			}
		}
		if float64(len(vals)) < 0.8*float64(window) || len(vals) < 2 {
			continue
		}
		sd := sampleStdDev(vals)
		if annualize {
			sd *= math.Sqrt(TradingDaysPerYear)
		}
		out[i] = sd
	}
	return out, nil
}

func sampleStdDev(vals []float64) float64 {
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals) - 1)
	return math.Sqrt(variance)
}
