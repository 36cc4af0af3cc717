package questiongen

import "github.com/abdibrokhim/ai-interviewer/internal/models"

// Distribution maps a question category to the number of questions planned
// for it. Categories depend on the interview type.
type Distribution map[string]int

// Per-type category fractions. Counts are floored per category and the
// remainder is intentionally not redistributed, so the planned total can be
// lower than the requested one.
var typeFractions = map[models.InterviewType]map[string]float64{
	models.InterviewTypeTechnical: {
		"conceptual":    0.4,
		"practical":     0.4,
		"system_design": 0.2,
	},
	models.InterviewTypeBehavioral: {
		"experience":  0.4,
		"situational": 0.3,
		"motivation":  0.3,
	},
	models.InterviewTypeCoding: {
		"warmup":      0.2,
		"medium":      0.5,
		"challenging": 0.3,
	},
	models.InterviewTypeMixed: {
		"behavioral": 0.3,
		"technical":  0.3,
		"coding":     0.4,
	},
}

// QuestionCount plans roughly one question per ten minutes of interview.
func QuestionCount(durationMinutes int) int {
	return durationMinutes / 10
}

// PlanDistribution splits totalQuestions across the categories of the given
// interview type. Unknown types fall back to the MIXED split.
func PlanDistribution(interviewType models.InterviewType, totalQuestions int) Distribution {
	fractions, ok := typeFractions[interviewType]
	if !ok {
		fractions = typeFractions[models.InterviewTypeMixed]
	}

	distribution := make(Distribution, len(fractions))
	for category, fraction := range fractions {
		distribution[category] = int(float64(totalQuestions) * fraction)
	}
	return distribution
}
