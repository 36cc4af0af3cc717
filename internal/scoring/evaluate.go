package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// Indicators are the deterministic signals extracted from one answer.
// TopicCoverage is nil when the question carries no expected topics.
type Indicators struct {
	HasStructure                bool     `json:"has_structure"`
	TopicCoverage               *float64 `json:"topic_coverage,omitempty"`
	DemonstratesDepth           bool     `json:"demonstrates_depth"`
	ShowsPracticalUnderstanding bool     `json:"shows_practical_understanding"`
}

// Evaluation is the per-question verdict: the criteria the answer was held
// against, the signals found, and the suggested 0-100 score.
type Evaluation struct {
	Criteria       []string   `json:"criteria"`
	Indicators     Indicators `json:"indicators"`
	SuggestedScore int        `json:"suggested_score"`
}

var (
	starPattern       = regexp.MustCompile(`(?i)situation|task|action|result|challenge|approach|outcome`)
	connectivePattern = regexp.MustCompile(`(?i)first|second|finally|because|therefore|however`)
	sentenceSplit     = regexp.MustCompile(`[.!?]`)

	depthIndicators = []*regexp.Regexp{
		regexp.MustCompile(`(?i)trade-?off`),
		regexp.MustCompile(`(?i)depends on`),
		regexp.MustCompile(`(?i)in my experience`),
		regexp.MustCompile(`(?i)considering`),
		regexp.MustCompile(`(?i)alternative`),
		regexp.MustCompile(`(?i)optimize`),
		regexp.MustCompile(`(?i)scale`),
	}

	practicalIndicators = []*regexp.Regexp{
		regexp.MustCompile(`(?i)for example`),
		regexp.MustCompile(`(?i)in practice`),
		regexp.MustCompile(`(?i)I have`),
		regexp.MustCompile(`(?i)we implemented`),
		regexp.MustCompile(`(?i)real-world`),
		regexp.MustCompile(`(?i)project`),
	}
)

// ScoreQuestion evaluates one answer against its question: base 60, plus
// structure, depth, practical-example, and topic-coverage bonuses, scaled by
// difficulty and capped at 100.
func ScoreQuestion(question models.Question, answer string, questionType models.InterviewType) Evaluation {
	indicators := Indicators{
		HasStructure:                checkAnswerStructure(answer, questionType),
		DemonstratesDepth:           matchesAny(answer, depthIndicators),
		ShowsPracticalUnderstanding: matchesAny(answer, practicalIndicators),
	}
	if len(question.ExpectedTopics) > 0 {
		coverage := topicCoverage(answer, question.ExpectedTopics)
		indicators.TopicCoverage = &coverage
	}

	return Evaluation{
		Criteria:       evaluationCriteria(questionType, question.Difficulty),
		Indicators:     indicators,
		SuggestedScore: suggestedScore(indicators, question.Difficulty),
	}
}

func suggestedScore(indicators Indicators, difficulty models.Depth) int {
	score := 60.0

	if indicators.HasStructure {
		score += 10
	}
	if indicators.DemonstratesDepth {
		score += 15
	}
	if indicators.ShowsPracticalUnderstanding {
		score += 10
	}
	if indicators.TopicCoverage != nil {
		score += math.Round(*indicators.TopicCoverage * 15)
	}

	multiplier := 1.0
	switch difficulty {
	case models.DepthHigh:
		multiplier = 1.1
	case models.DepthLow:
		multiplier = 0.9
	}

	final := int(math.Round(score * multiplier))
	if final > 100 {
		final = 100
	}
	return final
}

// checkAnswerStructure looks for the expected answer shape: STAR keywords
// for behavioral, logical connectives for technical, multiple sentences for
// everything else.
func checkAnswerStructure(answer string, questionType models.InterviewType) bool {
	switch questionType {
	case models.InterviewTypeBehavioral:
		return starPattern.MatchString(answer)
	case models.InterviewTypeTechnical:
		return connectivePattern.MatchString(answer)
	default:
		return len(sentenceSplit.Split(answer, -1)) > 2
	}
}

func topicCoverage(answer string, expectedTopics []string) float64 {
	answerLower := strings.ToLower(answer)

	covered := 0
	for _, topic := range expectedTopics {
		if strings.Contains(answerLower, strings.ToLower(topic)) {
			covered++
		}
	}
	return float64(covered) / float64(len(expectedTopics))
}

func matchesAny(answer string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(answer) {
			return true
		}
	}
	return false
}

var typeCriteria = map[models.InterviewType][]string{
	models.InterviewTypeBehavioral: {"specific examples", "self-reflection", "impact description"},
	models.InterviewTypeTechnical:  {"conceptual understanding", "practical application", "best practices"},
	models.InterviewTypeCoding:     {"algorithm efficiency", "code quality", "edge case handling"},
}

var difficultyCriteria = map[models.Depth][]string{
	models.DepthHigh:   {"nuanced understanding", "innovative thinking", "system-level perspective"},
	models.DepthMedium: {"solid reasoning", "multiple approaches", "trade-off analysis"},
	models.DepthLow:    {"fundamental knowledge", "basic application", "clear communication"},
}

func evaluationCriteria(questionType models.InterviewType, difficulty models.Depth) []string {
	criteria := []string{"clarity", "completeness", "accuracy"}
	criteria = append(criteria, typeCriteria[questionType]...)
	criteria = append(criteria, difficultyCriteria[difficulty]...)
	return criteria
}
