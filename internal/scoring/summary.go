package scoring

import (
	"fmt"
	"strings"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// Hiring recommendation bands. Fixed by policy, not configurable.
const (
	RecommendStrongHire = "STRONG HIRE - Exceeds requirements"
	RecommendHire       = "HIRE - Meets requirements well"
	RecommendConsider   = "CONSIDER - Shows potential with proper support"
	RecommendNoHire     = "NO HIRE - Does not meet current requirements"
)

// Summary is the human-readable assessment derived from an aggregated score.
type Summary struct {
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Recommendations      []string `json:"recommendations"`
	Summary              string   `json:"summary"`
	HiringRecommendation string   `json:"hiring_recommendation"`
}

// Summarize turns an aggregated score into feedback. strongAnswers and
// weakAnswers are caller-identified highlights; only the first three of each
// are quoted.
func Summarize(score models.Score, strongAnswers, weakAnswers []string, experienceLevel string) Summary {
	return Summary{
		Strengths:            identifyStrengths(score, strongAnswers),
		Weaknesses:           identifyWeaknesses(score, weakAnswers),
		Recommendations:      recommendations(score, experienceLevel),
		Summary:              narrative(score, experienceLevel),
		HiringRecommendation: HiringRecommendation(score.Overall, experienceLevel),
	}
}

// HiringRecommendation applies the fixed decision bands to an overall score.
// Juniors at the 60-69 band get a CONSIDER instead of a NO HIRE.
func HiringRecommendation(overall int, experienceLevel string) string {
	switch {
	case overall >= 80:
		return RecommendStrongHire
	case overall >= 70:
		return RecommendHire
	case overall >= 60 && experienceLevel == "junior":
		return RecommendConsider
	default:
		return RecommendNoHire
	}
}

func identifyStrengths(score models.Score, strongAnswers []string) []string {
	var strengths []string

	if score.Communication >= 80 {
		strengths = append(strengths, "Excellent communication skills")
	}
	if score.Technical >= 80 {
		strengths = append(strengths, "Strong technical knowledge")
	}
	if score.ProblemSolving >= 80 {
		strengths = append(strengths, "Outstanding problem-solving ability")
	}
	if score.Confidence >= 80 {
		strengths = append(strengths, "High confidence and professional presence")
	}

	if len(strongAnswers) > 0 {
		strengths = append(strengths, "Particularly strong in: "+strings.Join(firstN(strongAnswers, 3), ", "))
	}
	return strengths
}

func identifyWeaknesses(score models.Score, weakAnswers []string) []string {
	var weaknesses []string

	if score.Communication < 60 {
		weaknesses = append(weaknesses, "Communication needs improvement")
	}
	if score.Technical < 60 {
		weaknesses = append(weaknesses, "Technical knowledge gaps identified")
	}
	if score.ProblemSolving < 60 {
		weaknesses = append(weaknesses, "Problem-solving approach needs development")
	}
	if score.Confidence < 60 {
		weaknesses = append(weaknesses, "Could benefit from confidence building")
	}

	if len(weakAnswers) > 0 {
		weaknesses = append(weaknesses, "Areas for improvement: "+strings.Join(firstN(weakAnswers, 3), ", "))
	}
	return weaknesses
}

func recommendations(score models.Score, experienceLevel string) []string {
	var recs []string

	if score.Technical < 70 {
		recs = append(recs, "Consider additional technical training or certifications")
	}
	if score.Communication < 70 {
		recs = append(recs, "Practice explaining technical concepts to non-technical audiences")
	}
	if experienceLevel == "junior" && score.Overall >= 70 {
		recs = append(recs, "Strong potential for growth with mentorship")
	}
	return recs
}

func narrative(score models.Score, experienceLevel string) string {
	performance := "below expectations"
	switch {
	case score.Overall >= 80:
		performance = "excellent"
	case score.Overall >= 70:
		performance = "good"
	case score.Overall >= 60:
		performance = "satisfactory"
	}

	expectation := "falls short of"
	if score.Overall >= 70 {
		expectation = "meets or exceeds"
	}

	return fmt.Sprintf("The candidate demonstrated %s overall performance with particular strength in %s. For a %s-level position, the candidate %s expectations.",
		performance, strongestArea(score), experienceLevel, expectation)
}

// strongestArea names the best dimension; ties go to the earlier dimension
// in communication, technical, problem solving, confidence order.
func strongestArea(score models.Score) string {
	areas := []struct {
		name  string
		value int
	}{
		{"communication", score.Communication},
		{"technical", score.Technical},
		{"problem solving", score.ProblemSolving},
		{"confidence", score.Confidence},
	}

	best := areas[0]
	for _, area := range areas[1:] {
		if area.value > best.value {
			best = area
		}
	}
	return best.name
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
