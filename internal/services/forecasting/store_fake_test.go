package forecasting

import (
	"context"

	"marketmood/internal/domain/signal"
)

// salesStore is an in-memory signal.Store serving canned sales records
type salesStore struct {
	sales []signal.SalesRecord
}

var _ signal.Store = (*salesStore)(nil)

func (f *salesStore) ArticlesInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.Article, error) {
	return nil, nil
}

func (f *salesStore) SocialPostsInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SocialPost, error) {
	return nil, nil
}

func (f *salesStore) SearchVolumeInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SearchVolumeSample, error) {
	return nil, nil
}

func (f *salesStore) DiscussionPostsInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.DiscussionPost, error) {
	return nil, nil
}

func (f *salesStore) CountArticlesMatching(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	return 0, nil
}

func (f *salesStore) AvgArticleSentimentMatching(ctx context.Context, keyword string, w signal.TimeWindow) (float64, error) {
	return 0, nil
}

func (f *salesStore) CountSocialPostsMatching(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	return 0, nil
}

func (f *salesStore) CountSearchVolumeExact(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	return 0, nil
}

func (f *salesStore) SalesByCategory(ctx context.Context, category string, w signal.TimeWindow) ([]signal.SalesRecord, error) {
	out := []signal.SalesRecord{}
	for _, r := range f.sales {
		if r.Category != category {
			continue
		}
		if !r.Date.Before(w.Start) && r.Date.Before(w.End) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *salesStore) SalesInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SalesRecord, error) {
	out := []signal.SalesRecord{}
	for _, r := range f.sales {
		if !r.Date.Before(w.Start) && r.Date.Before(w.End) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *salesStore) Stats(ctx context.Context) (signal.Stats, error) {
	return signal.Stats{SalesRecords: int64(len(f.sales))}, nil
}
