package signal

import (
	"context"
)

// Store defines the read-only query contract over collected signals.
// All windowed queries are half-open [Start, End) and return records
// ordered by timestamp ascending.
type Store interface {
	// Raw windowed reads
	ArticlesInWindow(ctx context.Context, w TimeWindow) ([]Article, error)
	SocialPostsInWindow(ctx context.Context, w TimeWindow) ([]SocialPost, error)
	SearchVolumeInWindow(ctx context.Context, w TimeWindow) ([]SearchVolumeSample, error)
	DiscussionPostsInWindow(ctx context.Context, w TimeWindow) ([]DiscussionPost, error)

	// Keyword-filtered aggregates. Matching is case-insensitive: substring
	// for article title/content and social text, exact for search keywords.
	CountArticlesMatching(ctx context.Context, keyword string, w TimeWindow) (int, error)
	AvgArticleSentimentMatching(ctx context.Context, keyword string, w TimeWindow) (float64, error)
	CountSocialPostsMatching(ctx context.Context, keyword string, w TimeWindow) (int, error)
	CountSearchVolumeExact(ctx context.Context, keyword string, w TimeWindow) (int, error)

	// Sales reads
	SalesByCategory(ctx context.Context, category string, w TimeWindow) ([]SalesRecord, error)
	SalesInWindow(ctx context.Context, w TimeWindow) ([]SalesRecord, error)

	// Stats returns per-kind record counts across the whole store
	Stats(ctx context.Context) (Stats, error)
}
