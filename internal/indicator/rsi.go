package indicator

import (
	"finsight/internal/model"
	"finsight/internal/series"
)

// RSI computes the Wilder-smoothed Relative Strength Index over the given
// period (typically 14). The first period indices are absent: index 0 has no
// price change, and the first average needs period changes. A window with no
// losses yields RSI 100 rather than a division failure.
func RSI(prices *model.PriceSeries, period int) (series.Series, error) {
	if period <= 0 {
		return nil, errNonPositivePeriod
	}
	closes := prices.Closes()
	out := series.Make(len(closes))
	if len(closes) < period+1 {
		return out, nil
	}

	// Initial averages: simple mean of the first period gains and losses.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	// Wilder smoothing for the rest.
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
