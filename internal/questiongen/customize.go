package questiongen

import (
	"strings"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// CustomizationPlan is the guidance bundle for tailoring one question to a
// specific candidate.
type CustomizationPlan struct {
	OriginalQuestion string   `json:"original_question"`
	RelevantSkills   []string `json:"relevant_skills"`
	ExperienceLevel  string   `json:"experience_level"`
	DepthAdjustment  string   `json:"depth_adjustment"`
	ShouldCustomize  bool     `json:"should_customize"`
}

// RelevantSkills returns the candidate skills that appear in the question
// text. A skill is relevant when either string contains the other,
// case-insensitively.
func RelevantSkills(questionText string, candidateSkills []string) []string {
	questionLower := strings.ToLower(questionText)

	var relevant []string
	for _, skill := range candidateSkills {
		skillLower := strings.ToLower(skill)
		if strings.Contains(questionLower, skillLower) || strings.Contains(skillLower, questionLower) {
			relevant = append(relevant, skill)
		}
	}
	return relevant
}

// Customize decides whether a question is worth tailoring to the candidate
// and, if so, with what guidance. Customization happens only when at least
// one candidate skill is relevant to the question.
func Customize(questionText string, candidateSkills []string, candidateExperience string, depth models.Depth) CustomizationPlan {
	relevant := RelevantSkills(questionText, candidateSkills)

	return CustomizationPlan{
		OriginalQuestion: questionText,
		RelevantSkills:   relevant,
		ExperienceLevel:  DetectExperienceLevel(candidateExperience),
		DepthAdjustment:  DepthAdjustment(depth),
		ShouldCustomize:  len(relevant) > 0,
	}
}
