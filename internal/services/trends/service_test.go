package trends

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketmood/internal/domain/signal"
	"marketmood/internal/domain/trend"
	"marketmood/pkg/errors"
	"marketmood/pkg/logger"
)

func newTestService(store signal.Store) *Service {
	return NewService(store, DefaultDetectorConfig(), logger.Get())
}

func article(text string, sentiment float64, age time.Duration) signal.Article {
	return signal.Article{
		Title:          text,
		Content:        "",
		Source:         "test",
		SentimentScore: sentiment,
		FetchedAt:      time.Now().UTC().Add(-age),
	}
}

// onePlusStore builds the canonical surge scenario: two mildly positive
// articles in the older half of a 48h window, four strongly positive ones
// in the recent half.
func onePlusStore() *fakeStore {
	store := &fakeStore{}
	for i := 0; i < 2; i++ {
		store.articles = append(store.articles, article("OnePlus launch rumors", 0.2, 30*time.Hour))
	}
	for i := 0; i < 4; i++ {
		store.articles = append(store.articles, article("OnePlus sales surge in festive season", 0.5, 6*time.Hour))
	}
	return store
}

func TestDetectTrendsSurgeScenario(t *testing.T) {
	svc := newTestService(onePlusStore())

	trends, err := svc.DetectTrends(context.Background(), 48)
	require.NoError(t, err)
	require.Len(t, trends, 2) // OnePlus and the generic "sale" keyword both match

	var found *trend.Trend
	for i := range trends {
		if trends[i].Keyword == "OnePlus" {
			found = &trends[i]
		}
	}
	require.NotNil(t, found)

	// velocity = (0.5 - 0.2) / 0.2, growth = (4 - 2) / 2 * 100
	assert.InDelta(t, 1.5, found.Velocity, 1e-9)
	assert.InDelta(t, 100.0, found.GrowthRate, 1e-9)
	assert.Equal(t, 6, found.MentionCount)
	assert.Equal(t, []trend.Source{trend.SourceNews}, found.Sources)
	assert.InDelta(t, 0.4, found.AvgSentiment, 1e-9)

	// sqrt(1.5 * 1.0 * 1/3) * ln(7)/ln(100) * 50
	assert.InDelta(t, 14.94, found.Strength, 0.01)
}

func TestDetectTrendsSortedByStrength(t *testing.T) {
	store := onePlusStore()
	store.articles = append(store.articles, article("budget laptop deals", 0.1, 6*time.Hour))

	svc := newTestService(store)
	trends, err := svc.DetectTrends(context.Background(), 48)
	require.NoError(t, err)
	require.NotEmpty(t, trends)

	for i := 1; i < len(trends); i++ {
		assert.GreaterOrEqual(t, trends[i-1].Strength, trends[i].Strength)
	}
}

func TestDetectTrendsNoMatches(t *testing.T) {
	store := &fakeStore{
		articles: []signal.Article{article("completely unrelated news", 0.5, 2*time.Hour)},
	}

	svc := newTestService(store)
	trends, err := svc.DetectTrends(context.Background(), 48)
	require.NoError(t, err)
	assert.Empty(t, trends)
}

func TestDetectTrendsSearchVolumeMentions(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{
		volumes: []signal.SearchVolumeSample{
			{Keyword: "xiaomi", Volume: 95, FetchedAt: now.Add(-2 * time.Hour)},
		},
	}

	svc := newTestService(store)
	trends, err := svc.DetectTrends(context.Background(), 48)
	require.NoError(t, err)
	require.Len(t, trends, 1)

	// 95 / 10 synthetic mentions, matched case-insensitively
	assert.Equal(t, "Xiaomi", trends[0].Keyword)
	assert.Equal(t, 9, trends[0].MentionCount)
	assert.Equal(t, []trend.Source{trend.SourceSearchVolume}, trends[0].Sources)
}

func TestDetectTrendsLowSearchVolumeDropped(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{
		volumes: []signal.SearchVolumeSample{
			{Keyword: "Xiaomi", Volume: 5, FetchedAt: now.Add(-2 * time.Hour)},
		},
	}

	svc := newTestService(store)
	trends, err := svc.DetectTrends(context.Background(), 48)
	require.NoError(t, err)
	assert.Empty(t, trends)
}

func TestDetectTrendsInvalidWindow(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.DetectTrends(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestVelocityZeroOlderHalf(t *testing.T) {
	tests := []struct {
		name            string
		recentSentiment float64
		want            float64
	}{
		{"positive recent", 0.6, 1.0},
		{"negative recent", -0.6, -1.0},
		{"neutral recent", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				articles: []signal.Article{article("Samsung foldable review", tt.recentSentiment, 3*time.Hour)},
			}
			svc := newTestService(store)

			w := signal.WindowEndingNow(48 * time.Hour)
			velocity, err := svc.velocity(context.Background(), "Samsung", w)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, velocity, 1e-9)
		})
	}
}

func TestGrowthRateZeroOlderHalf(t *testing.T) {
	store := &fakeStore{
		articles: []signal.Article{article("Samsung foldable review", 0.4, 3*time.Hour)},
	}
	svc := newTestService(store)

	w := signal.WindowEndingNow(48 * time.Hour)
	growth, err := svc.growthRate(context.Background(), "Samsung", w)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, growth, 1e-9)

	growth, err = svc.growthRate(context.Background(), "Realme", w)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, growth, 1e-9)
}

func TestCheckCrossSourceAgreement(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{
		articles: []signal.Article{article("Samsung event recap", 0.3, 4*time.Hour)},
		volumes: []signal.SearchVolumeSample{
			{Keyword: "samsung", Volume: 80, FetchedAt: now.Add(-5 * time.Hour)},
		},
	}
	svc := newTestService(store)

	agreement, err := svc.CheckCrossSourceAgreement(context.Background(), "Samsung", 24*time.Hour)
	require.NoError(t, err)

	assert.True(t, agreement.Agreement)
	assert.Equal(t, 2, agreement.SourceCount)
	assert.Equal(t, trend.ConfidenceMedium, agreement.Confidence)
	assert.Equal(t, 1, agreement.PerSource[trend.SourceNews])
	assert.Equal(t, 0, agreement.PerSource[trend.SourceSocial])
	assert.Equal(t, 1, agreement.PerSource[trend.SourceSearchVolume])
}

func TestCheckCrossSourceAgreementEmptyKeyword(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.CheckCrossSourceAgreement(context.Background(), "", time.Hour)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestGetEarlyWarningsSingleSourceSuppressed(t *testing.T) {
	// Strong fast-moving trend, but only the news source corroborates it
	svc := newTestService(onePlusStore())

	warnings, err := svc.GetEarlyWarnings(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestGetEarlyWarningsEmitted(t *testing.T) {
	now := time.Now().UTC()
	store := onePlusStore()
	store.posts = []signal.SocialPost{
		{Text: "the new oneplus is unreal", FetchedAt: now.Add(-2 * time.Hour)},
		{Text: "oneplus camera blows my mind", FetchedAt: now.Add(-3 * time.Hour)},
	}
	store.volumes = []signal.SearchVolumeSample{
		{Keyword: "OnePlus", Volume: 90, FetchedAt: now.Add(-4 * time.Hour)},
	}

	svc := newTestService(store)
	warnings, err := svc.GetEarlyWarnings(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, warnings, 1)

	w := warnings[0]
	assert.Equal(t, "OnePlus", w.Keyword)
	assert.Equal(t, trend.AlertMedium, w.AlertLevel)
	assert.Equal(t, trend.ConfidenceHigh, w.Confidence)
	assert.NotEmpty(t, w.ID)
	assert.InDelta(t, 1.5, w.Velocity, 1e-9)
	assert.True(t, strings.HasPrefix(w.Recommendation, "OPPORTUNITY:"), w.Recommendation)
	assert.ElementsMatch(t,
		[]trend.Source{trend.SourceNews, trend.SourceSocial, trend.SourceSearchVolume},
		w.Sources,
	)
}

func TestGetEarlyWarningsInvalidThreshold(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.GetEarlyWarnings(context.Background(), 150)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = svc.GetEarlyWarnings(context.Background(), -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestRecommendDecisionTable(t *testing.T) {
	tests := []struct {
		name      string
		velocity  float64
		sentiment float64
		prefix    string
	}{
		{"opportunity", 0.8, 0.5, "OPPORTUNITY:"},
		{"risk", 0.8, -0.5, "RISK:"},
		{"caution", -0.8, 0.2, "CAUTION:"},
		{"monitor", 0.4, 0.1, "MONITOR:"},
		{"watch", 0.1, 0.1, "WATCH:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recommend(trend.Trend{Keyword: "phone", Velocity: tt.velocity, AvgSentiment: tt.sentiment})
			assert.True(t, strings.HasPrefix(rec, tt.prefix), rec)
		})
	}
}
