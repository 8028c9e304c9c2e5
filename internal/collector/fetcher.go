package collector

import "finsight/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.PricePoint, error)
	FetchFundamentals(symbol string) (*model.FundamentalSnapshot, error)
	Name() string
}
