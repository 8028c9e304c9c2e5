// Package indicator computes technical indicator series from daily price
// data. Every function returns a series exactly as long as its input, with
// absent values wherever the lookback window is not yet full. Insufficient
// data is never an error; a non-positive period is.
package indicator

import (
	"errors"

	"finsight/internal/model"
	"finsight/internal/series"
)

// Default indicator parameters, overridable by callers.
const (
	DefaultRSIPeriod       = 14
	DefaultBollingerPeriod = 20
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
)

// DefaultBollingerMult is the default standard-deviation multiplier.
const DefaultBollingerMult = 2.0

var errNonPositivePeriod = errors.New("period must be positive")

// SMA computes the simple moving average of closing prices over a trailing
// window. Values before index period-1 are absent.
func SMA(prices *model.PriceSeries, period int) (series.Series, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	closes := prices.Closes()
	out := series.Make(len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA computes the exponential moving average of closing prices. The value
// at index period-1 is seeded with the SMA of the first period closes; later
// values follow the standard two-term recurrence with multiplier 2/(period+1).
func EMA(prices *model.PriceSeries, period int) (series.Series, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	closes := prices.Closes()
	out := series.Make(len(closes))
	k := 2.0 / float64(period+1)
	sum := 0.0
	for i, c := range closes {
		if i < period {
			sum += c
			if i == period-1 {
				out[i] = sum / float64(period)
			}
			continue
		}
		prev := out[i-1]
		if !series.Present(prev) {
			continue
		}
		out[i] = (c-prev)*k + prev
	}
	return out, nil
}
