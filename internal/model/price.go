package model

import (
	"fmt"
	"time"
)

// PricePoint represents a single daily OHLCV bar.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds a symbol's daily bars, strictly ascending by date with
// unique dates. Out-of-order input is a caller error, detected by Validate.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// Len returns the number of price points.
func (p *PriceSeries) Len() int { return len(p.Points) }

// Closes returns the closing prices in order.
func (p *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		closes[i] = pt.Close
	}
	return closes
}

// Dates returns the calendar dates in order.
func (p *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(p.Points))
	for i, pt := range p.Points {
		dates[i] = pt.Date
	}
	return dates
}

// LastClose returns the most recent closing price, or 0 for an empty series.
func (p *PriceSeries) LastClose() float64 {
	if len(p.Points) == 0 {
		return 0
	}
	return p.Points[len(p.Points)-1].Close
}

// Validate checks that dates are strictly ascending (which also rules out
// duplicates). Violations are treated as programmer error, not encoded as
// absent values.
func (p *PriceSeries) Validate() error {
	for i := 1; i < len(p.Points); i++ {
		if !p.Points[i].Date.After(p.Points[i-1].Date) {
			return fmt.Errorf("price series %s: dates not strictly ascending at index %d (%s after %s)",
				p.Symbol, i,
				p.Points[i].Date.Format("2006-01-02"),
				p.Points[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
