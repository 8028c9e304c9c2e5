// Package analysis combines indicator outputs and fundamental ratios into a
// single weighted recommendation. Scoring is deterministic: identical inputs
// always produce the identical result.
package analysis

import (
	"fmt"
	"math"

	"finsight/internal/indicator"
	"finsight/internal/model"
)

// minAnalysisPoints is the price history required for a full analysis; with
// fewer points the engine falls back to a neutral HOLD.
const minAnalysisPoints = 200

// Sub-score weights for the composite.
const (
	weightTrend    = 0.4
	weightMomentum = 0.3
	weightValue    = 0.3
)

// Moving-average periods used by the trend factor.
const (
	smaFastPeriod = 50
	smaSlowPeriod = 200
)

// Analyze computes the composite recommendation for a symbol from its price
// series and an optional fundamental snapshot (nil yields a neutral value
// sub-score). Returns an error only for invalid input series.
func Analyze(prices *model.PriceSeries, fund *model.FundamentalSnapshot) (*model.AnalysisResult, error) {
	if err := prices.Validate(); err != nil {
		return nil, err
	}
	if prices.Len() < minAnalysisPoints {
		return &model.AnalysisResult{
			Action:  model.ActionHold,
			Score:   50,
			Summary: "Insufficient price history for a full analysis.",
			Reasons: []model.Reason{{
				Text:      fmt.Sprintf("fewer than %d price points available", minAnalysisPoints),
				Sentiment: model.SentimentNeutral,
			}},
			Metrics: model.ScoreBreakdown{TrendScore: 50, MomentumScore: 50, ValueScore: 50},
		}, nil
	}

	sma50, err := indicator.SMA(prices, smaFastPeriod)
	if err != nil {
		return nil, err
	}
	sma200, err := indicator.SMA(prices, smaSlowPeriod)
	if err != nil {
		return nil, err
	}
	rsi, err := indicator.RSI(prices, indicator.DefaultRSIPeriod)
	if err != nil {
		return nil, err
	}
	macd, err := indicator.MACD(prices, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)
	if err != nil {
		return nil, err
	}

	trend, trendReasons := scoreTrend(prices.LastClose(), sma50.Last(), sma200.Last())
	momentum, momentumReasons := scoreMomentum(rsi, macd.Histogram)
	value, valueReasons := scoreValue(fund)

	weighted := weightTrend*trend + weightMomentum*momentum + weightValue*value
	score := int(math.Round(weighted))

	reasons := make([]model.Reason, 0, len(trendReasons)+len(momentumReasons)+len(valueReasons))
	reasons = append(reasons, trendReasons...)
	reasons = append(reasons, momentumReasons...)
	reasons = append(reasons, valueReasons...)

	return &model.AnalysisResult{
		Action:  classify(score),
		Score:   score,
		Summary: buildSummary(trend, momentum, value),
		Reasons: sortReasons(reasons),
		Metrics: model.ScoreBreakdown{TrendScore: trend, MomentumScore: momentum, ValueScore: value},
	}, nil
}

// classify maps a composite score to an action. Thresholds are inclusive at
// the lower bound of each tier and evaluated in this order.
func classify(score int) model.Action {
	switch {
	case score >= 75:
		return model.ActionStrongBuy
	case score >= 60:
		return model.ActionBuy
	case score <= 25:
		return model.ActionStrongSell
	case score <= 40:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

// sortReasons places positive reasons before all others with a stable
// two-bucket partition; relative order inside each bucket is preserved.
func sortReasons(reasons []model.Reason) []model.Reason {
	out := make([]model.Reason, 0, len(reasons))
	for _, r := range reasons {
		if r.Sentiment == model.SentimentPositive {
			out = append(out, r)
		}
	}
	for _, r := range reasons {
		if r.Sentiment != model.SentimentPositive {
			out = append(out, r)
		}
	}
	return out
}

func buildSummary(trend, momentum, value float64) string {
	describe := func(score float64, high, low, mid string) string {
		switch {
		case score >= 60:
			return high
		case score <= 40:
			return low
		default:
			return mid
		}
	}
	return fmt.Sprintf("%s, %s, %s.",
		describe(trend, "Bullish trend", "Bearish trend", "Neutral trend"),
		describe(momentum, "positive momentum", "negative momentum", "flat momentum"),
		describe(value, "attractive valuation", "stretched valuation", "fair valuation"))
}
