package trends

import (
	"math"

	"marketmood/internal/domain/trend"
)

// scoreTrend combines velocity, growth, source spread and mention volume
// into a 0-100 strength score. Growth is normalized against a 100% move
// and capped, extra sources weigh in up to 1.5x, and mentions contribute
// logarithmically so high-volume keywords cannot dominate on volume alone.
func scoreTrend(velocity, growthRate float64, crossSourceCount, mentionCount int) float64 {
	growthFactor := math.Min(math.Abs(growthRate)/100, 2.0)

	crossSourceWeight := math.Min(float64(crossSourceCount)/3, 1.5)

	mentionFactor := math.Log(float64(mentionCount)+1) / math.Log(100)
	mentionFactor = math.Min(mentionFactor, 1.5)

	baseStrength := math.Sqrt(math.Abs(velocity)*growthFactor*crossSourceWeight) * mentionFactor

	return math.Min(baseStrength*50, 100)
}

// classifyTrend maps a strength score and velocity sign to a signal label
func classifyTrend(strength, velocity float64) string {
	switch {
	case strength > 70:
		if velocity > 0 {
			return trend.SignalStrongPositive
		}
		return trend.SignalStrongNegative
	case strength > 50:
		if velocity > 0 {
			return trend.SignalModeratePositive
		}
		return trend.SignalModerateNegative
	case strength > 30:
		return trend.SignalWeak
	default:
		return trend.SignalStable
	}
}
