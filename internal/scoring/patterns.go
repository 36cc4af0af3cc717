package scoring

import (
	"time"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// Confidence trend classifications.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Patterns are the behavioral insights derived from the sentiment series.
type Patterns struct {
	ConfidenceTrend string      `json:"confidence_trend"`
	StressPoints    []time.Time `json:"stress_points"`
}

// IdentifyPatterns extracts behavioral patterns from the sentiment history.
func IdentifyPatterns(history []models.SentimentSample) Patterns {
	return Patterns{
		ConfidenceTrend: ConfidenceTrend(history),
		StressPoints:    stressPoints(history),
	}
}

// ConfidenceTrend splits the audio-confidence series at its midpoint and
// compares the half means. Fewer than three samples is always "stable".
func ConfidenceTrend(history []models.SentimentSample) string {
	if len(history) < 3 {
		return TrendStable
	}

	var values []float64
	for _, sample := range history {
		if sample.Audio != nil {
			values = append(values, sample.Audio.Confidence)
		}
	}

	mid := len(values) / 2
	if mid == 0 || len(values)-mid == 0 {
		return TrendStable
	}

	firstAvg := mean(values[:mid])
	secondAvg := mean(values[mid:])

	switch {
	case secondAvg > firstAvg+0.1:
		return TrendIncreasing
	case secondAvg < firstAvg-0.1:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// stressPoints lists the timestamps where the candidate sounded stressed or
// nervous.
func stressPoints(history []models.SentimentSample) []time.Time {
	var points []time.Time
	for _, sample := range history {
		if sample.Audio == nil {
			continue
		}
		if sample.Audio.Tone == models.ToneStressed || sample.Audio.Tone == models.ToneNervous {
			points = append(points, sample.Timestamp)
		}
	}
	return points
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
