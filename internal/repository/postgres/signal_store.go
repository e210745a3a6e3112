package postgres

import (
	"context"

	"marketmood/internal/domain/signal"
	"marketmood/internal/metrics"
	"marketmood/pkg/errors"
)

// SignalStore implements signal.Store over PostgreSQL
type SignalStore struct {
	db DBTX
}

// Compile-time interface check
var _ signal.Store = (*SignalStore)(nil)

// NewSignalStore creates a new signal store
func NewSignalStore(db DBTX) *SignalStore {
	return &SignalStore{db: db}
}

// observe records the outcome of one store query
func observe(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueries.WithLabelValues("postgres", operation, status).Inc()
}

// ArticlesInWindow returns articles fetched within [w.Start, w.End)
func (s *SignalStore) ArticlesInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.Article, error) {
	query := `
		SELECT id, title, content, source, sentiment_score, fetched_at
		FROM articles
		WHERE fetched_at >= $1 AND fetched_at < $2
		ORDER BY fetched_at
	`

	articles := []signal.Article{}
	err := s.db.SelectContext(ctx, &articles, query, w.Start, w.End)
	observe("articles_in_window", err)
	if err != nil {
		return nil, errors.Wrap(err, "select articles in window")
	}
	return articles, nil
}

// SocialPostsInWindow returns social posts fetched within [w.Start, w.End)
func (s *SignalStore) SocialPostsInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SocialPost, error) {
	query := `
		SELECT id, text, fetched_at
		FROM social_posts
		WHERE fetched_at >= $1 AND fetched_at < $2
		ORDER BY fetched_at
	`

	posts := []signal.SocialPost{}
	err := s.db.SelectContext(ctx, &posts, query, w.Start, w.End)
	observe("social_posts_in_window", err)
	if err != nil {
		return nil, errors.Wrap(err, "select social posts in window")
	}
	return posts, nil
}

// SearchVolumeInWindow returns search-volume samples within [w.Start, w.End)
func (s *SignalStore) SearchVolumeInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SearchVolumeSample, error) {
	query := `
		SELECT id, keyword, volume, fetched_at
		FROM search_volumes
		WHERE fetched_at >= $1 AND fetched_at < $2
		ORDER BY fetched_at
	`

	samples := []signal.SearchVolumeSample{}
	err := s.db.SelectContext(ctx, &samples, query, w.Start, w.End)
	observe("search_volume_in_window", err)
	if err != nil {
		return nil, errors.Wrap(err, "select search volumes in window")
	}
	return samples, nil
}

// DiscussionPostsInWindow returns discussion posts within [w.Start, w.End)
func (s *SignalStore) DiscussionPostsInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.DiscussionPost, error) {
	query := `
		SELECT id, title, text, forum, fetched_at
		FROM discussion_posts
		WHERE fetched_at >= $1 AND fetched_at < $2
		ORDER BY fetched_at
	`

	posts := []signal.DiscussionPost{}
	err := s.db.SelectContext(ctx, &posts, query, w.Start, w.End)
	observe("discussion_posts_in_window", err)
	if err != nil {
		return nil, errors.Wrap(err, "select discussion posts in window")
	}
	return posts, nil
}

// CountArticlesMatching counts articles whose title or content contains the
// keyword, case-insensitively
func (s *SignalStore) CountArticlesMatching(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM articles
		WHERE fetched_at >= $1 AND fetched_at < $2
		  AND (title ILIKE '%' || $3 || '%' OR content ILIKE '%' || $3 || '%')
	`

	var count int
	err := s.db.GetContext(ctx, &count, query, w.Start, w.End, keyword)
	observe("count_articles_matching", err)
	if err != nil {
		return 0, errors.Wrap(err, "count matching articles")
	}
	return count, nil
}

// AvgArticleSentimentMatching averages the sentiment of matching articles.
// No matching rows yields zero, not an error.
func (s *SignalStore) AvgArticleSentimentMatching(ctx context.Context, keyword string, w signal.TimeWindow) (float64, error) {
	query := `
		SELECT COALESCE(AVG(sentiment_score), 0)
		FROM articles
		WHERE fetched_at >= $1 AND fetched_at < $2
		  AND (title ILIKE '%' || $3 || '%' OR content ILIKE '%' || $3 || '%')
	`

	var avg float64
	err := s.db.GetContext(ctx, &avg, query, w.Start, w.End, keyword)
	observe("avg_article_sentiment", err)
	if err != nil {
		return 0, errors.Wrap(err, "avg matching article sentiment")
	}
	return avg, nil
}

// CountSocialPostsMatching counts social posts whose text contains the
// keyword, case-insensitively
func (s *SignalStore) CountSocialPostsMatching(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM social_posts
		WHERE fetched_at >= $1 AND fetched_at < $2
		  AND text ILIKE '%' || $3 || '%'
	`

	var count int
	err := s.db.GetContext(ctx, &count, query, w.Start, w.End, keyword)
	observe("count_social_posts_matching", err)
	if err != nil {
		return 0, errors.Wrap(err, "count matching social posts")
	}
	return count, nil
}

// CountSearchVolumeExact counts search-volume samples whose keyword equals
// the given keyword, case-insensitively
func (s *SignalStore) CountSearchVolumeExact(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM search_volumes
		WHERE fetched_at >= $1 AND fetched_at < $2
		  AND LOWER(keyword) = LOWER($3)
	`

	var count int
	err := s.db.GetContext(ctx, &count, query, w.Start, w.End, keyword)
	observe("count_search_volume_exact", err)
	if err != nil {
		return 0, errors.Wrap(err, "count exact search volumes")
	}
	return count, nil
}

// SalesByCategory returns sales records for one category within the window,
// ordered by sale date
func (s *SignalStore) SalesByCategory(ctx context.Context, category string, w signal.TimeWindow) ([]signal.SalesRecord, error) {
	query := `
		SELECT id, category, count, date
		FROM ecommerce_sales
		WHERE category = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	records := []signal.SalesRecord{}
	err := s.db.SelectContext(ctx, &records, query, category, w.Start, w.End)
	observe("sales_by_category", err)
	if err != nil {
		return nil, errors.Wrap(err, "select sales by category")
	}
	return records, nil
}

// SalesInWindow returns sales records for all categories within the window,
// ordered by sale date
func (s *SignalStore) SalesInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SalesRecord, error) {
	query := `
		SELECT id, category, count, date
		FROM ecommerce_sales
		WHERE date >= $1 AND date < $2
		ORDER BY date
	`

	records := []signal.SalesRecord{}
	err := s.db.SelectContext(ctx, &records, query, w.Start, w.End)
	observe("sales_in_window", err)
	if err != nil {
		return nil, errors.Wrap(err, "select sales in window")
	}
	return records, nil
}

// Stats returns per-kind record counts across the whole store
func (s *SignalStore) Stats(ctx context.Context) (signal.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM articles)         AS articles,
			(SELECT COUNT(*) FROM social_posts)     AS social_posts,
			(SELECT COUNT(*) FROM search_volumes)   AS search_volumes,
			(SELECT COUNT(*) FROM ecommerce_sales)  AS sales_records,
			(SELECT COUNT(*) FROM discussion_posts) AS discussion_posts
	`

	var stats signal.Stats
	err := s.db.GetContext(ctx, &stats, query)
	observe("stats", err)
	if err != nil {
		return signal.Stats{}, errors.Wrap(err, "select store stats")
	}
	return stats, nil
}
