package trends

import (
	"context"
	"strings"

	"marketmood/internal/domain/signal"
)

// fakeStore is an in-memory signal.Store with the same matching semantics
// as the SQL implementation
type fakeStore struct {
	articles    []signal.Article
	posts       []signal.SocialPost
	volumes     []signal.SearchVolumeSample
	discussions []signal.DiscussionPost
	sales       []signal.SalesRecord
}

var _ signal.Store = (*fakeStore)(nil)

func (f *fakeStore) ArticlesInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.Article, error) {
	out := []signal.Article{}
	for _, a := range f.articles {
		if !a.FetchedAt.Before(w.Start) && a.FetchedAt.Before(w.End) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) SocialPostsInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SocialPost, error) {
	out := []signal.SocialPost{}
	for _, p := range f.posts {
		if !p.FetchedAt.Before(w.Start) && p.FetchedAt.Before(w.End) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) SearchVolumeInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SearchVolumeSample, error) {
	out := []signal.SearchVolumeSample{}
	for _, sv := range f.volumes {
		if !sv.FetchedAt.Before(w.Start) && sv.FetchedAt.Before(w.End) {
			out = append(out, sv)
		}
	}
	return out, nil
}

func (f *fakeStore) DiscussionPostsInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.DiscussionPost, error) {
	out := []signal.DiscussionPost{}
	for _, d := range f.discussions {
		if !d.FetchedAt.Before(w.Start) && d.FetchedAt.Before(w.End) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) matchingArticles(keyword string, w signal.TimeWindow) []signal.Article {
	needle := strings.ToLower(keyword)
	out := []signal.Article{}
	for _, a := range f.articles {
		if a.FetchedAt.Before(w.Start) || !a.FetchedAt.Before(w.End) {
			continue
		}
		text := strings.ToLower(a.Title + " " + a.Content)
		if strings.Contains(text, needle) {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeStore) CountArticlesMatching(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	return len(f.matchingArticles(keyword, w)), nil
}

func (f *fakeStore) AvgArticleSentimentMatching(ctx context.Context, keyword string, w signal.TimeWindow) (float64, error) {
	matched := f.matchingArticles(keyword, w)
	if len(matched) == 0 {
		return 0, nil
	}
	var sum float64
	for _, a := range matched {
		sum += a.SentimentScore
	}
	return sum / float64(len(matched)), nil
}

func (f *fakeStore) CountSocialPostsMatching(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	needle := strings.ToLower(keyword)
	count := 0
	for _, p := range f.posts {
		if p.FetchedAt.Before(w.Start) || !p.FetchedAt.Before(w.End) {
			continue
		}
		if strings.Contains(strings.ToLower(p.Text), needle) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountSearchVolumeExact(ctx context.Context, keyword string, w signal.TimeWindow) (int, error) {
	count := 0
	for _, sv := range f.volumes {
		if sv.FetchedAt.Before(w.Start) || !sv.FetchedAt.Before(w.End) {
			continue
		}
		if strings.EqualFold(sv.Keyword, keyword) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) SalesByCategory(ctx context.Context, category string, w signal.TimeWindow) ([]signal.SalesRecord, error) {
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

func (f *fakeStore) SalesInWindow(ctx context.Context, w signal.TimeWindow) ([]signal.SalesRecord, error) {
	out := []signal.SalesRecord{}
	for _, r := range f.sales {
		if !r.Date.Before(w.Start) && r.Date.Before(w.End) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Stats(ctx context.Context) (signal.Stats, error) {
	return signal.Stats{
		Articles:        int64(len(f.articles)),
		SocialPosts:     int64(len(f.posts)),
		SearchVolumes:   int64(len(f.volumes)),
		SalesRecords:    int64(len(f.sales)),
		DiscussionPosts: int64(len(f.discussions)),
	}, nil
}
