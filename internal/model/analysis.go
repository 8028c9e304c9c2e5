package model

import (
	"time"

	"finsight/internal/series"
)

// BollingerBands holds the three volatility band series, each index-aligned
// with the source price series.
type BollingerBands struct {
	Middle series.Series
	Upper  series.Series
	Lower  series.Series
}

// MACDResult holds the MACD line, its signal line, and their difference.
type MACDResult struct {
	MACD      series.Series
	Signal    series.Series
	Histogram series.Series
}

// CrossoverType distinguishes golden from death crosses.
type CrossoverType string

const (
	CrossGolden CrossoverType = "golden"
	CrossDeath  CrossoverType = "death"
)

// CrossoverEvent marks a fast/slow moving-average cross. Events form a
// sparse list and are not index-aligned with the price series.
type CrossoverEvent struct {
	Type  CrossoverType `json:"type"`
	Index int           `json:"index"`
	Date  time.Time     `json:"date"`
}

// DrawdownPath holds the running-peak series and the percentage drawdown
// from that peak. Peak is present from the first price point onward.
type DrawdownPath struct {
	Drawdown series.Series
	Peak     series.Series
}

// MaxDrawdownSummary describes the single worst drawdown episode. Recovery
// is nil while the pre-drawdown peak has not been reclaimed.
type MaxDrawdownSummary struct {
	MaxDrawdown     float64    `json:"max_drawdown"`
	MaxDrawdownDate time.Time  `json:"max_drawdown_date"`
	PeakDate        time.Time  `json:"peak_date"`
	RecoveryDate    *time.Time `json:"recovery_date,omitempty"`
}

// FiftyTwoWeekRange summarizes the trailing 52-week (252 trading day) range.
// Percent fields are relative to the last close in the window.
type FiftyTwoWeekRange struct {
	High            float64   `json:"high"`
	HighDate        time.Time `json:"high_date"`
	Low             float64   `json:"low"`
	LowDate         time.Time `json:"low_date"`
	PercentFromHigh float64   `json:"percent_from_high"`
	PercentFromLow  float64   `json:"percent_from_low"`
}

// Action is the five-level recommendation produced by the scoring engine.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// Sentiment tags a reason for display ordering.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Reason is one human-readable contribution to the composite score.
type Reason struct {
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
}

// ScoreBreakdown carries the three weighted sub-scores, each in [0,100].
type ScoreBreakdown struct {
	TrendScore    float64 `json:"trend_score"`
	MomentumScore float64 `json:"momentum_score"`
	ValueScore    float64 `json:"value_score"`
}

// AnalysisResult is the final output of the composite scoring engine.
type AnalysisResult struct {
	Action  Action         `json:"action"`
	Score   int            `json:"score"`
	Summary string         `json:"summary"`
	Reasons []Reason       `json:"reasons"`
	Metrics ScoreBreakdown `json:"metrics"`
}
