package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// ErrNoScores is returned when aggregation is asked to average nothing.
var ErrNoScores = errors.New("no scores to aggregate")

// Overall weighting of the four dimensions. Must sum to exactly 1.0.
const (
	communicationWeight  = 0.2
	technicalWeight      = 0.4
	problemSolvingWeight = 0.3
	confidenceWeight     = 0.1
)

// DimensionScore is one question's contribution to the four dimensions.
type DimensionScore struct {
	Communication  int `json:"communication"`
	Technical      int `json:"technical"`
	ProblemSolving int `json:"problem_solving"`
	Confidence     int `json:"confidence"`
}

// Aggregate computes the weighted mean of each dimension across question
// scores. weights may be nil (every score weighs 1); a non-nil weights slice
// must match scores in length. Sentiment history, when present, scales the
// confidence dimension by the candidate's mean audio confidence before the
// overall score is derived.
func Aggregate(scores []DimensionScore, weights []float64, history []models.SentimentSample) (models.Score, error) {
	if len(scores) == 0 {
		return models.Score{}, ErrNoScores
	}
	if weights != nil && len(weights) != len(scores) {
		return models.Score{}, fmt.Errorf("mismatched weights: %d weights for %d scores", len(weights), len(scores))
	}

	var communication, technical, problemSolving, confidence, totalWeight float64
	for i, s := range scores {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		communication += float64(s.Communication) * w
		technical += float64(s.Technical) * w
		problemSolving += float64(s.ProblemSolving) * w
		confidence += float64(s.Confidence) * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return models.Score{}, fmt.Errorf("mismatched weights: total weight is zero")
	}

	score := models.Score{
		Communication:  int(math.Round(communication / totalWeight)),
		Technical:      int(math.Round(technical / totalWeight)),
		ProblemSolving: int(math.Round(problemSolving / totalWeight)),
		Confidence:     int(math.Round(confidence / totalWeight)),
	}

	if adjustment, ok := sentimentAdjustment(history); ok {
		score.Confidence = int(math.Round(float64(score.Confidence) * (1 + adjustment)))
		if score.Confidence > 100 {
			score.Confidence = 100
		}
	}

	score.Overall = Overall(score)
	return score, nil
}

// Overall derives the composite score from the four dimensions.
func Overall(score models.Score) int {
	return int(math.Round(
		float64(score.Communication)*communicationWeight +
			float64(score.Technical)*technicalWeight +
			float64(score.ProblemSolving)*problemSolvingWeight +
			float64(score.Confidence)*confidenceWeight))
}

// sentimentAdjustment maps mean audio confidence to a factor in [-0.1, +0.1].
// The second return is false when the history carries no audio samples.
func sentimentAdjustment(history []models.SentimentSample) (float64, bool) {
	var sum float64
	var count int
	for _, sample := range history {
		if sample.Audio != nil {
			sum += sample.Audio.Confidence
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return (sum/float64(count) - 0.5) * 0.2, true
}
