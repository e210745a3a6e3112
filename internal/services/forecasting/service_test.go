package forecasting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmood/internal/domain/forecast"
	"marketmood/internal/domain/signal"
	"marketmood/pkg/errors"
	"marketmood/pkg/logger"
)

// recentSales builds daily records for one category ending today, so the
// whole run sits inside any lookback window of at least len(counts) days
func recentSales(category string, counts ...int) []signal.SalesRecord {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	records := make([]signal.SalesRecord, len(counts))
	for i, c := range counts {
		records[i] = signal.SalesRecord{
			Category: category,
			Count:    c,
			Date:     today.AddDate(0, 0, i-len(counts)+1),
		}
	}
	return records
}

func newTestService(store signal.Store) *Service {
	return NewService(store, DefaultConfig(), logger.Get())
}

func TestForecastCategoryMetadata(t *testing.T) {
	store := &salesStore{sales: recentSales("phones", 100, 105, 98, 110, 120, 140, 135, 150)}
	svc := newTestService(store)

	result, err := svc.ForecastCategory(context.Background(), "phones", 7, forecast.ModelEnsemble)
	require.NoError(t, err)

	assert.Equal(t, "phones", result.Category)
	assert.Equal(t, forecast.ModelEnsemble, result.Model)
	assert.Equal(t, 8, result.HistoricalDataPoints)
	assert.Equal(t, forecast.TrendUp, result.Trend)
	assert.False(t, result.GeneratedAt.IsZero())
	assert.Len(t, result.Points, 7)
}

func TestForecastCategoryNoHistory(t *testing.T) {
	svc := newTestService(&salesStore{})

	result, err := svc.ForecastCategory(context.Background(), "phones", 5, forecast.ModelEnsemble)
	require.NoError(t, err)

	assert.Equal(t, forecast.ModelNaive, result.Model)
	assert.Equal(t, 0, result.HistoricalDataPoints)
	assert.Equal(t, forecast.TrendStable, result.Trend)
	require.Len(t, result.Points, 5)
	for _, pt := range result.Points {
		assert.Equal(t, 0.0, pt.Value)
	}
}

func TestForecastCategoryShortHistoryUsesNaive(t *testing.T) {
	// 5 observations are below the fitted-model minimum
	store := &salesStore{sales: recentSales("phones", 10, 12, 11, 13, 14)}
	svc := newTestService(store)

	result, err := svc.ForecastCategory(context.Background(), "phones", 7, forecast.ModelARIMA)
	require.NoError(t, err)
	assert.Equal(t, forecast.ModelNaive, result.Model)
	assert.Equal(t, 5, result.HistoricalDataPoints)
}

func TestForecastCategoryValidation(t *testing.T) {
	svc := newTestService(&salesStore{})

	tests := []struct {
		name      string
		category  string
		daysAhead int
		model     string
	}{
		{"empty category", "", 7, forecast.ModelNaive},
		{"zero days", "phones", 0, forecast.ModelNaive},
		{"too many days", "phones", 31, forecast.ModelNaive},
		{"unknown model", "phones", 7, "prophet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ForecastCategory(context.Background(), tt.category, tt.daysAhead, tt.model)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidInput))
		})
	}
}

func TestForecastCategoryModelIsCaseInsensitive(t *testing.T) {
	store := &salesStore{sales: recentSales("phones", 10, 12, 11)}
	svc := newTestService(store)

	result, err := svc.ForecastCategory(context.Background(), "phones", 3, "NAIVE")
	require.NoError(t, err)
	assert.Equal(t, forecast.ModelNaive, result.Model)
}

func TestForecastAllCategories(t *testing.T) {
	store := &salesStore{sales: recentSales("phones", 100, 105, 98, 110, 120, 140, 135, 150)}
	svc := newTestService(store)

	results, err := svc.ForecastAllCategories(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, results, len(DefaultConfig().Categories))

	for _, category := range DefaultConfig().Categories {
		result, ok := results[category]
		require.True(t, ok, category)
		assert.Equal(t, category, result.Category)
		assert.Len(t, result.Points, 7)
	}

	// The one category with history fits the ensemble, the rest degrade
	assert.Equal(t, forecast.ModelEnsemble, results["phones"].Model)
	assert.Equal(t, forecast.ModelNaive, results["laptops"].Model)
}

func TestForecastAllCategoriesValidation(t *testing.T) {
	svc := newTestService(&salesStore{})

	_, err := svc.ForecastAllCategories(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestSeriesTrend(t *testing.T) {
	assert.Equal(t, forecast.TrendStable, seriesTrend(forecast.DailySeries{}))
	assert.Equal(t, forecast.TrendStable, seriesTrend(seriesOf(5)))
	assert.Equal(t, forecast.TrendUp, seriesTrend(seriesOf(5, 6, 9)))
	assert.Equal(t, forecast.TrendDown, seriesTrend(seriesOf(9, 6, 5)))
	assert.Equal(t, forecast.TrendStable, seriesTrend(seriesOf(5, 9, 5)))
}
