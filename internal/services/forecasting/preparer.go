package forecasting

import (
	"sort"
	"time"

	"marketmood/internal/domain/forecast"
	"marketmood/internal/domain/signal"
)

// prepareSeries turns raw sales records into a gap-free daily series:
// same-day records are summed, the date range is reindexed to every
// calendar day between the first and last observation, and gaps are
// forward-filled. Leading days before the first observation are never
// synthesized. No records yields an empty series, not an error.
func prepareSeries(records []signal.SalesRecord) forecast.DailySeries {
	if len(records) == 0 {
		return forecast.DailySeries{}
	}

	byDay := make(map[time.Time]float64)
	for _, r := range records {
		day := r.Date.UTC().Truncate(24 * time.Hour)
		byDay[day] += float64(r.Count)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	first, last := days[0], days[len(days)-1]

	series := forecast.DailySeries{}
	lastValue := 0.0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if v, ok := byDay[day]; ok {
			lastValue = v
		}
		series = append(series, forecast.DailyPoint{Date: day, Value: lastValue})
	}

	return series
}
