package indicator

import (
	"finsight/internal/model"
	"finsight/internal/series"
)

// Crossovers scans two already-computed moving-average series (conventionally
// the 50- and 200-day SMAs) for golden and death crosses. Steps where either
// series is absent on either side of the pair are skipped. The returned list
// is sparse, ordered by index.
func Crossovers(prices *model.PriceSeries, fast, slow series.Series) []model.CrossoverEvent {
	var events []model.CrossoverEvent
	n := prices.Len()
	for i := 1; i < n; i++ {
		if !fast.Present(i-1) || !fast.Present(i) || !slow.Present(i-1) || !slow.Present(i) {
			continue
		}
		if fast[i-1] <= slow[i-1] && fast[i] > slow[i] {
			events = append(events, model.CrossoverEvent{
				Type:  model.CrossGolden,
				Index: i,
				Date:  prices.Points[i].Date,
			})
		}
		if fast[i-1] >= slow[i-1] && fast[i] < slow[i] {
			events = append(events, model.CrossoverEvent{
				Type:  model.CrossDeath,
				Index: i,
				Date:  prices.Points[i].Date,
			})
		}
	}
	return events
}
