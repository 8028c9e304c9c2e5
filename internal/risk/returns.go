// Package risk computes return, volatility, drawdown, range, and beta
// metrics from daily price data. Series outputs follow the same alignment
// and absent-value discipline as package indicator; whole-value outputs
// return nil when there is not enough data to compute them.
package risk

import (
	"math"

	"finsight/internal/model"
	"finsight/internal/series"
)

// TradingDaysPerYear is the annualization base for daily volatility.
const TradingDaysPerYear = 252

// Default parameters, overridable by callers.
const (
	DefaultVolatilityWindow = 21
	DefaultBetaLookback     = 252
	DefaultRangeWindow      = 252
)

// SimpleReturns computes day-over-day simple returns. The first index is
// always absent, as is any index whose prior close is not positive.
func SimpleReturns(prices *model.PriceSeries) series.Series {
	closes := prices.Closes()
	out := series.Make(len(closes))
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 {
			continue
		}
		out[i] = (closes[i] - prev) / prev
	}
	return out
}

// LogReturns computes day-over-day log returns with the same absence rules
// as SimpleReturns.
func LogReturns(prices *model.PriceSeries) series.Series {
	closes := prices.Closes()
	out := series.Make(len(closes))
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 || closes[i] <= 0 {
			continue
		}
		out[i] = math.Log(closes[i] / prev)
	}
	return out
}
