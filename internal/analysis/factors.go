package analysis

import (
	"fmt"

	"finsight/internal/model"
	"finsight/internal/series"
)

// scoreTrend scores the price's position relative to the 50- and 200-day
// moving averages. Starts at 50, bounded to [0,100].
func scoreTrend(price, sma50, sma200 float64) (float64, []model.Reason) {
	if !series.Present(sma50) || !series.Present(sma200) {
		return 50, []model.Reason{{
			Text:      "moving averages unavailable",
			Sentiment: model.SentimentNeutral,
		}}
	}

	score := 50.0
	var reasons []model.Reason

	switch {
	case price > sma50 && price > sma200:
		score += 20
		reasons = append(reasons, positive("price above both the 50-day and 200-day moving averages"))
	case price < sma50 && price < sma200:
		score -= 20
		reasons = append(reasons, negative("price below both the 50-day and 200-day moving averages"))
	case price > sma200:
		score += 10
		reasons = append(reasons, positive("price above the 200-day moving average"))
	case price < sma200:
		score -= 10
		reasons = append(reasons, negative("price below the 200-day moving average"))
	}

	if sma50 > sma200 {
		score += 10
		reasons = append(reasons, positive("golden cross alignment: 50-day average above 200-day"))
	} else {
		score -= 10
		reasons = append(reasons, negative("death cross alignment: 50-day average below 200-day"))
	}

	return clamp(score), reasons
}

// scoreMomentum scores the latest RSI reading and the direction of the MACD
// histogram.
func scoreMomentum(rsi, histogram series.Series) (float64, []model.Reason) {
	score := 50.0
	var reasons []model.Reason

	if v, ok := rsi.LastPresent(); ok {
		switch {
		case v < 30:
			score += 30
			reasons = append(reasons, positive(fmt.Sprintf("RSI %.1f: oversold, potential rebound", v)))
		case v > 70:
			score -= 20
			reasons = append(reasons, negative(fmt.Sprintf("RSI %.1f: overbought, risk of correction", v)))
		case v > 50:
			score += 10
			reasons = append(reasons, positive(fmt.Sprintf("RSI %.1f in the bullish half of its range", v)))
		}
	}

	if curr, prev, ok := lastTwoPresent(histogram); ok {
		if curr > prev && curr > 0 {
			score += 10
			reasons = append(reasons, positive("MACD histogram rising in positive territory"))
		} else if curr < prev && curr < 0 {
			score -= 10
			reasons = append(reasons, negative("MACD histogram falling in negative territory"))
		}
	}

	return clamp(score), reasons
}

// scoreValue scores the fundamental snapshot. A nil snapshot yields the
// neutral default of 50 with an explanatory reason.
func scoreValue(f *model.FundamentalSnapshot) (float64, []model.Reason) {
	if f == nil {
		return 50, []model.Reason{{
			Text:      "no fundamental data available",
			Sentiment: model.SentimentNeutral,
		}}
	}

	score := 50.0
	var reasons []model.Reason

	if f.TrailingPE != nil {
		pe := *f.TrailingPE
		switch {
		case pe > 0 && pe < 15:
			score += 20
			reasons = append(reasons, positive(fmt.Sprintf("attractive trailing P/E of %.1f", pe)))
		case pe > 30:
			score -= 15
			reasons = append(reasons, negative(fmt.Sprintf("elevated trailing P/E of %.1f", pe)))
		default:
			reasons = append(reasons, neutral(fmt.Sprintf("trailing P/E of %.1f within a normal range", pe)))
		}
	}

	if f.PEGRatio != nil {
		peg := *f.PEGRatio
		if peg < 1.0 {
			score += 20
			reasons = append(reasons, positive(fmt.Sprintf("PEG ratio %.2f suggests growth at a reasonable price", peg)))
		} else if peg > 2.0 {
			score -= 10
			reasons = append(reasons, negative(fmt.Sprintf("PEG ratio %.2f prices in aggressive growth", peg)))
		}
	} else if f.RevenueGrowth != nil && *f.RevenueGrowth > 0.15 {
		score += 10
		reasons = append(reasons, positive(fmt.Sprintf("revenue growing %.1f%% year over year", *f.RevenueGrowth*100)))
	}

	if f.ProfitMargins != nil && *f.ProfitMargins > 0.15 {
		score += 10
		reasons = append(reasons, positive(fmt.Sprintf("profit margin of %.1f%%", *f.ProfitMargins*100)))
	}

	if f.DividendYield != nil && *f.DividendYield > 1.0 {
		score += 5
		reasons = append(reasons, positive(fmt.Sprintf("dividend yield of %.2f%%", *f.DividendYield)))
	}

	return clamp(score), reasons
}

// lastTwoPresent returns the two most recent present values, newest first.
func lastTwoPresent(s series.Series) (curr, prev float64, ok bool) {
	found := 0
	for i := len(s) - 1; i >= 0 && found < 2; i-- {
		if !s.Present(i) {
			continue
		}
		if found == 0 {
			curr = s[i]
		} else {
			prev = s[i]
		}
		found++
	}
	return curr, prev, found == 2
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func positive(text string) model.Reason {
	return model.Reason{Text: text, Sentiment: model.SentimentPositive}
}

func negative(text string) model.Reason {
	return model.Reason{Text: text, Sentiment: model.SentimentNegative}
}

func neutral(text string) model.Reason {
	return model.Reason{Text: text, Sentiment: model.SentimentNeutral}
}
