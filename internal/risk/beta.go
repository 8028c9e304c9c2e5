package risk

import (
	"errors"

	"finsight/internal/model"
)

// minBetaReturnPairs is the minimum number of paired returns required for a
// meaningful covariance estimate.
const minBetaReturnPairs = 30

// betaOverlapFloor is the hard minimum of overlapping trading dates, capped
// by the lookback itself for short lookbacks.
const betaOverlapFloor = 60

// Beta computes the sensitivity of an asset's daily returns to a benchmark's
// over the most recent lookback overlapping trading days. The two series are
// inner-joined on calendar date since their trading calendars may differ.
// Returns nil when overlap or return pairs are insufficient, or when the
// benchmark's return variance is zero.
func Beta(stock, benchmark *model.PriceSeries, lookback int) (*float64, error) {
	if lookback <= 0 {
		return nil, errors.New("lookback must be positive")
	}

	benchCloses := make(map[string]float64, benchmark.Len())
	for _, pt := range benchmark.Points {
		benchCloses[pt.Date.Format("2006-01-02")] = pt.Close
	}

	// Aligned closes in the stock's (ascending) date order.
	var stockAligned, benchAligned []float64
	for _, pt := range stock.Points {
		if bc, ok := benchCloses[pt.Date.Format("2006-01-02")]; ok {
			stockAligned = append(stockAligned, pt.Close)
			benchAligned = append(benchAligned, bc)
		}
	}

	minOverlap := betaOverlapFloor
	if lookback < minOverlap {
		minOverlap = lookback
	}
	if len(stockAligned) < minOverlap {
		return nil, nil
	}
	if len(stockAligned) > lookback {
		stockAligned = stockAligned[len(stockAligned)-lookback:]
		benchAligned = benchAligned[len(benchAligned)-lookback:]
	}

	var stockRets, benchRets []float64
	for i := 1; i < len(stockAligned); i++ {
		if stockAligned[i-1] <= 0 || benchAligned[i-1] <= 0 {
			continue
		}
		stockRets = append(stockRets, (stockAligned[i]-stockAligned[i-1])/stockAligned[i-1])
		benchRets = append(benchRets, (benchAligned[i]-benchAligned[i-1])/benchAligned[i-1])
	}
	if len(stockRets) < minBetaReturnPairs {
		return nil, nil
	}

	cov, benchVar := sampleCovariance(stockRets, benchRets)
	if benchVar == 0 {
		return nil, nil
	}
	beta := cov / benchVar
	return &beta, nil
}

// sampleCovariance returns the sample covariance of x with y and the sample
// variance of y, both with the n-1 divisor.
func sampleCovariance(x, y []float64) (cov, varY float64) {
	n := float64(len(x))
	meanX, meanY := 0.0, 0.0
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= n
	meanY /= n
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varY += dy * dy
	}
	cov /= n - 1
	varY /= n - 1
	return cov, varY
}
