package forecasting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmood/internal/domain/signal"
)

func day(offset int) time.Time {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestPrepareSeriesEmpty(t *testing.T) {
	series := prepareSeries(nil)
	assert.Empty(t, series)
}

func TestPrepareSeriesSumsSameDay(t *testing.T) {
	records := []signal.SalesRecord{
		{Category: "phones", Count: 10, Date: day(0)},
		{Category: "phones", Count: 5, Date: day(0).Add(9 * time.Hour)},
		{Category: "phones", Count: 7, Date: day(1)},
	}

	series := prepareSeries(records)
	require.Len(t, series, 2)
	assert.Equal(t, 15.0, series[0].Value)
	assert.Equal(t, 7.0, series[1].Value)
}

func TestPrepareSeriesForwardFillsGaps(t *testing.T) {
	records := []signal.SalesRecord{
		{Category: "phones", Count: 10, Date: day(0)},
		{Category: "phones", Count: 20, Date: day(3)},
	}

	series := prepareSeries(records)
	require.Len(t, series, 4)

	// Contiguous calendar days
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), series[i].Date)
	}

	// Gap days carry the last observed value forward
	assert.Equal(t, []float64{10, 10, 10, 20}, series.Values())
}

func TestPrepareSeriesUnorderedInput(t *testing.T) {
	records := []signal.SalesRecord{
		{Category: "phones", Count: 30, Date: day(2)},
		{Category: "phones", Count: 10, Date: day(0)},
		{Category: "phones", Count: 20, Date: day(1)},
	}

	series := prepareSeries(records)
	require.Len(t, series, 3)
	assert.Equal(t, []float64{10, 20, 30}, series.Values())
	assert.Equal(t, day(0), series[0].Date)
	assert.Equal(t, day(2), series.LastDate())
}
