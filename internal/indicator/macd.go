package indicator

import (
	"finsight/internal/model"
	"finsight/internal/series"
)

// MACD computes the Moving Average Convergence Divergence: the difference of
// a fast and a slow EMA, a signal line smoothing the MACD line itself, and
// their histogram. The signal line accumulates only over present MACD values
// and seeds with their simple mean once signalPeriod of them have been seen.
func MACD(prices *model.PriceSeries, fast, slow, signalPeriod int) (*model.MACDResult, error) {
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 {
		return nil, errNonPositivePeriod
	}
	fastEMA, err := EMA(prices, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMA(prices, slow)
	if err != nil {
		return nil, err
	}

	n := prices.Len()
	macd := series.Make(n)
	for i := 0; i < n; i++ {
		if fastEMA.Present(i) && slowEMA.Present(i) {
			macd[i] = fastEMA[i] - slowEMA[i]
		}
	}

	signal := smoothPresent(macd, signalPeriod)

	histogram := series.Make(n)
	for i := 0; i < n; i++ {
		if macd.Present(i) && signal.Present(i) {
			histogram[i] = macd[i] - signal[i]
		}
	}
	return &model.MACDResult{MACD: macd, Signal: signal, Histogram: histogram}, nil
}

// smoothPresent applies the EMA recurrence over only the present values of a
// series, seeding with the simple mean of the first period present values.
func smoothPresent(values series.Series, period int) series.Series {
	out := series.Make(len(values))
	k := 2.0 / float64(period+1)
	seen := 0
	sum := 0.0
	prev := 0.0
	seeded := false
	for i, v := range values {
		if !series.Present(v) {
			continue
		}
		if !seeded {
			seen++
			sum += v
			if seen == period {
				prev = sum / float64(period)
				out[i] = prev
				seeded = true
			}
			continue
		}
		prev = (v-prev)*k + prev
		out[i] = prev
	}
	return out
}
