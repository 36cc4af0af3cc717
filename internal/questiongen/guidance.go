package questiongen

import (
	"regexp"
	"strconv"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// ExampleStructure sketches the expected shape of a generated question so
// the model has a concrete format to follow.
type ExampleStructure struct {
	MainQuestion       string   `json:"main_question,omitempty"`
	ProblemStatement   string   `json:"problem_statement,omitempty"`
	FollowUps          []string `json:"follow_ups,omitempty"`
	Constraints        []string `json:"constraints,omitempty"`
	Examples           []string `json:"examples,omitempty"`
	EvaluationCriteria []string `json:"evaluation_criteria"`
}

var exampleStructures = map[models.InterviewType]ExampleStructure{
	models.InterviewTypeBehavioral: {
		MainQuestion:       "Tell me about a time when...",
		FollowUps:          []string{"What was the outcome?", "What would you do differently?", "How did you measure success?"},
		EvaluationCriteria: []string{"Clarity", "Impact", "Learning", "Leadership"},
	},
	models.InterviewTypeTechnical: {
		MainQuestion:       "Explain how... works",
		FollowUps:          []string{"What are the trade-offs?", "How would you optimize it?", "What alternatives exist?"},
		EvaluationCriteria: []string{"Accuracy", "Depth", "Practical application", "Communication"},
	},
	models.InterviewTypeCoding: {
		ProblemStatement:   "Given..., implement a function that...",
		Constraints:        []string{"Time complexity should be...", "Space complexity should be..."},
		Examples:           []string{"Input: ..., Output: ..."},
		EvaluationCriteria: []string{"Correctness", "Efficiency", "Code quality", "Problem-solving approach"},
	},
}

// StructureFor falls back to the technical structure for unknown types.
func StructureFor(interviewType models.InterviewType) ExampleStructure {
	if structure, ok := exampleStructures[interviewType]; ok {
		return structure
	}
	return exampleStructures[models.InterviewTypeTechnical]
}

// Guidelines assembles the static guidance lines for a generation request:
// interview-type rules first, then depth, then experience level.
func Guidelines(interviewType models.InterviewType, depth models.Depth, experienceLevel string) []string {
	var guidelines []string

	switch interviewType {
	case models.InterviewTypeBehavioral:
		guidelines = append(guidelines,
			"Focus on past experiences and specific situations",
			"Use STAR method (Situation, Task, Action, Result)",
			"Probe for learnings and self-reflection",
		)
	case models.InterviewTypeTechnical:
		guidelines = append(guidelines,
			"Test conceptual understanding, not just memorization",
			"Include real-world application scenarios",
			"Allow for different valid approaches",
		)
	case models.InterviewTypeCoding:
		guidelines = append(guidelines,
			"Start with problem understanding and clarification",
			"Evaluate problem-solving approach, not just the solution",
			"Consider time and space complexity discussions",
		)
	}

	switch depth {
	case models.DepthHigh:
		guidelines = append(guidelines,
			"Include follow-up questions to dig deeper",
			"Challenge assumptions and explore edge cases",
			"Assess ability to handle ambiguity",
		)
	case models.DepthMedium:
		guidelines = append(guidelines,
			"Balance between breadth and depth",
			"Include some challenging aspects",
		)
	default:
		guidelines = append(guidelines,
			"Focus on fundamental understanding",
			"Provide clear, unambiguous questions",
		)
	}

	switch experienceLevel {
	case "senior", "lead":
		guidelines = append(guidelines,
			"Include system design and architecture questions",
			"Assess leadership and mentoring abilities",
			"Test strategic thinking and trade-off analysis",
		)
	case "junior":
		guidelines = append(guidelines,
			"Focus on fundamentals and learning ability",
			"Assess enthusiasm and growth potential",
			"Include questions about recent projects or learning",
		)
	}

	return guidelines
}

var depthAdjustments = map[models.Depth]string{
	models.DepthHigh:   "Add complexity and ambiguity, expect detailed analysis",
	models.DepthMedium: "Balance clarity with some challenging aspects",
	models.DepthLow:    "Keep straightforward and focused on fundamentals",
}

// DepthAdjustment describes how to adjust a customized question for depth.
func DepthAdjustment(depth models.Depth) string {
	if adjustment, ok := depthAdjustments[depth]; ok {
		return adjustment
	}
	return depthAdjustments[models.DepthMedium]
}

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\s*year`)

// DetectExperienceLevel reads a free-text experience description and bands it
// by the first "N year(s)" mention found.
func DetectExperienceLevel(experience string) string {
	years := 0
	if m := yearsPattern.FindStringSubmatch(experience); m != nil {
		years, _ = strconv.Atoi(m[1])
	}

	switch {
	case years >= 8:
		return "senior"
	case years >= 4:
		return "mid"
	case years >= 2:
		return "junior"
	default:
		return "entry"
	}
}
