package indicator

import (
	"errors"
	"math"

	"finsight/internal/model"
	"finsight/internal/series"
)

// Bollinger computes Bollinger Bands: an SMA middle band with upper and
// lower bands mult population standard deviations away. All three bands are
// absent wherever the middle band is.
func Bollinger(prices *model.PriceSeries, period int, mult float64) (*model.BollingerBands, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	if mult <= 0 {
		return nil, errors.New("multiplier must be positive")
	}
	middle, err := SMA(prices, period)
	if err != nil {
		return nil, err
	}
	closes := prices.Closes()
	upper := series.Make(len(closes))
	lower := series.Make(len(closes))
	for i := period - 1; i < len(closes); i++ {
		mean := middle[i]
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		variance /= float64(period)
		sd := math.Sqrt(variance)
		upper[i] = mean + mult*sd
		lower[i] = mean - mult*sd
	}
	return &model.BollingerBands{Middle: middle, Upper: upper, Lower: lower}, nil
}
