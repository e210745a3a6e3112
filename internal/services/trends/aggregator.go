package trends

import (
	"context"
	"strings"

	"marketmood/internal/domain/signal"
	"marketmood/internal/domain/trend"
	"marketmood/pkg/errors"
)

// aggregate scans one detection window and accumulates per-keyword
// evidence across all three mention sources. Keywords that collect no
// mentions are absent from the result.
func (s *Service) aggregate(ctx context.Context, w signal.TimeWindow) (map[string]*trend.KeywordSignal, error) {
	signals := make(map[string]*trend.KeywordSignal)

	get := func(keyword string) *trend.KeywordSignal {
		ks, ok := signals[keyword]
		if !ok {
			ks = &trend.KeywordSignal{
				Keyword: keyword,
				Sources: make(map[trend.Source]struct{}),
			}
			signals[keyword] = ks
		}
		return ks
	}

	articles, err := s.store.ArticlesInWindow(ctx, w)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate articles")
	}
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Content)
		for _, keyword := range s.cfg.TrackedKeywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				ks := get(keyword)
				ks.MentionCount++
				ks.Sources[trend.SourceNews] = struct{}{}
				ks.SentimentSamples = append(ks.SentimentSamples, a.SentimentScore)
			}
		}
	}

	posts, err := s.store.SocialPostsInWindow(ctx, w)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate social posts")
	}
	for _, p := range posts {
		text := strings.ToLower(p.Text)
		for _, keyword := range s.cfg.TrackedKeywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				ks := get(keyword)
				ks.MentionCount++
				ks.Sources[trend.SourceSocial] = struct{}{}
			}
		}
	}

	samples, err := s.store.SearchVolumeInWindow(ctx, w)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate search volumes")
	}
	for _, sv := range samples {
		for _, keyword := range s.cfg.TrackedKeywords {
			if strings.EqualFold(sv.Keyword, keyword) {
				ks := get(keyword)
				ks.MentionCount += sv.Volume / s.cfg.SearchVolumeMentionDivisor
				ks.Sources[trend.SourceSearchVolume] = struct{}{}
			}
		}
	}

	for keyword, ks := range signals {
		if ks.MentionCount <= 0 {
			delete(signals, keyword)
		}
	}

	return signals, nil
}
