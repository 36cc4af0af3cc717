package codeeval

import (
	"fmt"
	"math"
	"strings"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

type ScoreInput struct {
	PassedTests     int
	TotalTests      int
	TimeComplexity  string
	QualityScore    int
	TimeSpentMin    float64
	ExpectedTimeMin float64
}

// SubmissionScore combines correctness 40%, efficiency 25%, code quality 20%,
// and time management 15% into a 0-100 score.
func SubmissionScore(in ScoreInput) int {
	score := 0.0

	// Correctness.
	if in.TotalTests > 0 {
		score += float64(in.PassedTests) / float64(in.TotalTests) * 40
	}

	// Efficiency. Base 15 for a working solution, 10 when quadratic-or-worse
	// on a problem with a tight expected solve time, 20 for linear or
	// linearithmic.
	efficiency := 15.0
	if strings.Contains(in.TimeComplexity, "n²") && in.ExpectedTimeMin < 30 {
		efficiency = 10
	} else if in.TimeComplexity == "O(n)" || in.TimeComplexity == "O(n log n)" {
		efficiency = 20
	}
	score += efficiency

	// Code quality, scaled from the 0-100 quality score.
	score += float64(in.QualityScore) / 100 * 20

	// Problem solving via time management.
	problemSolving := 10.0
	if in.ExpectedTimeMin > 0 {
		ratio := in.TimeSpentMin / in.ExpectedTimeMin
		if ratio < 0.8 {
			problemSolving = 15
		} else if ratio > 1.5 {
			problemSolving = 5
		}
	}
	score += problemSolving

	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

func buildFeedback(result models.CodeEvaluationResult) string {
	var sb strings.Builder

	switch {
	case result.Score >= 80:
		sb.WriteString("Excellent solution! ")
	case result.Score >= 60:
		sb.WriteString("Good attempt with room for improvement. ")
	default:
		sb.WriteString("The solution needs work. ")
	}

	fmt.Fprintf(&sb, "\n\nTest Results: Passed %d/%d test cases\n", result.PassedTests, result.TotalTests)
	if !result.Success {
		sb.WriteString("Some test cases failed. Review edge cases and logic.\n")
	}

	sb.WriteString("\nComplexity Analysis:\n")
	fmt.Fprintf(&sb, "- Time: %s\n", result.Complexity.Time)
	fmt.Fprintf(&sb, "- Space: %s\n", result.Complexity.Space)

	fmt.Fprintf(&sb, "\nCode Quality: %s\n", qualityFeedback(result.QualityScore))
	if len(result.Quality.Suggestions) > 0 {
		sb.WriteString("Suggestions:\n")
		for _, s := range result.Quality.Suggestions {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}

	return sb.String()
}

func qualityFeedback(score int) string {
	switch {
	case score >= 80:
		return "Excellent code quality! Well-structured with good practices."
	case score >= 60:
		return "Good code quality with room for improvement in some areas."
	case score >= 40:
		return "Fair code quality. Consider implementing the suggestions to improve."
	default:
		return "Code needs improvement. Focus on the suggested areas."
	}
}
