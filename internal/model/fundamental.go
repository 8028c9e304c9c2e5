package model

import "time"

// FundamentalSnapshot holds the fundamental ratios reported for a symbol at
// a point in time. Fields are pointers because the upstream source reports
// most of them only for a subset of assets; nil means "not reported".
// Margins and growth rates are fractions (0.15 == 15%), dividend yield is a
// percentage, matching the ingestion source.
type FundamentalSnapshot struct {
	Date             time.Time `json:"date"`
	MarketCap        *float64  `json:"market_cap,omitempty"`
	TrailingPE       *float64  `json:"trailing_pe,omitempty"`
	ForwardPE        *float64  `json:"forward_pe,omitempty"`
	PEGRatio         *float64  `json:"peg_ratio,omitempty"`
	PriceToBook      *float64  `json:"price_to_book,omitempty"`
	PriceToSales     *float64  `json:"price_to_sales,omitempty"`
	ProfitMargins    *float64  `json:"profit_margins,omitempty"`
	OperatingMargins *float64  `json:"operating_margins,omitempty"`
	RevenueGrowth    *float64  `json:"revenue_growth,omitempty"`
	EarningsGrowth   *float64  `json:"earnings_growth,omitempty"`
	TrailingEPS      *float64  `json:"trailing_eps,omitempty"`
	ForwardEPS       *float64  `json:"forward_eps,omitempty"`
	DividendYield    *float64  `json:"dividend_yield,omitempty"`
	DividendRate     *float64  `json:"dividend_rate,omitempty"`
	PayoutRatio      *float64  `json:"payout_ratio,omitempty"`
}
