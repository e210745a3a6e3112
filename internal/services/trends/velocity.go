package trends

import (
	"context"
	"math"

	"marketmood/internal/domain/signal"
	"marketmood/pkg/errors"
)

// velocity measures how fast article sentiment for a keyword is moving:
// the relative change of the mean sentiment between the older and the
// recent half of the window.
func (s *Service) velocity(ctx context.Context, keyword string, w signal.TimeWindow) (float64, error) {
	older, recent := w.Halves()

	recentAvg, err := s.store.AvgArticleSentimentMatching(ctx, keyword, recent)
	if err != nil {
		return 0, errors.Wrap(err, "recent sentiment")
	}
	olderAvg, err := s.store.AvgArticleSentimentMatching(ctx, keyword, older)
	if err != nil {
		return 0, errors.Wrap(err, "older sentiment")
	}

	if olderAvg == 0 {
		switch {
		case recentAvg > 0:
			return 1.0, nil
		case recentAvg < 0:
			return -1.0, nil
		default:
			return 0, nil
		}
	}

	return (recentAvg - olderAvg) / math.Abs(olderAvg), nil
}

// growthRate measures the percentage change in article mention counts
// between the two window halves.
func (s *Service) growthRate(ctx context.Context, keyword string, w signal.TimeWindow) (float64, error) {
	older, recent := w.Halves()

	recentCount, err := s.store.CountArticlesMatching(ctx, keyword, recent)
	if err != nil {
		return 0, errors.Wrap(err, "recent mentions")
	}
	olderCount, err := s.store.CountArticlesMatching(ctx, keyword, older)
	if err != nil {
		return 0, errors.Wrap(err, "older mentions")
	}

	if olderCount == 0 {
		if recentCount > 0 {
			return 100.0, nil
		}
		return 0, nil
	}

	return float64(recentCount-olderCount) / float64(olderCount) * 100, nil
}
