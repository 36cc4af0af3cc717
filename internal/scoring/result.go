package scoring

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/conductor"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// Engine turns a conducted interview bundle into the terminal
// InterviewResult. It owns no state beyond its logger; all scoring rules are
// package-level and deterministic.
type Engine struct {
	logger *zerolog.Logger
	now    func() time.Time
}

func NewEngine(logger *zerolog.Logger) *Engine {
	return &Engine{
		logger: logger,
		now:    time.Now,
	}
}

// ScoreInterview evaluates every answer, folds in code submissions and
// sentiment history, and assembles the result. An aborted bundle with no
// scoreable material still yields a partial result carrying the transcript;
// a completed bundle with nothing to score is an aggregation error.
func (e *Engine) ScoreInterview(bundle conductor.Bundle, submissions []models.CodeSubmission) (models.InterviewResult, error) {
	var dimensionScores []DimensionScore
	var questionResults []models.QuestionResult
	var strongAnswers, weakAnswers []string

	for _, answer := range bundle.Answers {
		questionType := questionTypeFor(answer.Question.Category, bundle.Context.InterviewType)
		combined := answer.Combined()
		evaluation := ScoreQuestion(answer.Question, combined, questionType)

		dimensionScores = append(dimensionScores, DimensionScore{
			Communication:  evaluation.SuggestedScore,
			Technical:      evaluation.SuggestedScore,
			ProblemSolving: evaluation.SuggestedScore,
			Confidence:     evaluation.SuggestedScore,
		})
		questionResults = append(questionResults, models.QuestionResult{
			QuestionID: answer.Question.ID,
			Question:   answer.Question.Text,
			Answer:     combined,
			Score:      evaluation.SuggestedScore,
			Feedback:   questionFeedback(evaluation),
		})

		if evaluation.SuggestedScore >= 80 {
			strongAnswers = append(strongAnswers, answer.Question.Text)
		} else if evaluation.SuggestedScore < 60 {
			weakAnswers = append(weakAnswers, answer.Question.Text)
		}
	}

	// Code submissions enter the aggregate as additional scored units.
	for _, submission := range submissions {
		dimensionScores = append(dimensionScores, DimensionScore{
			Communication:  submission.Result.Score,
			Technical:      submission.Result.Score,
			ProblemSolving: submission.Result.Score,
			Confidence:     submission.Result.Score,
		})
		if submission.Result.Score >= 80 {
			strongAnswers = append(strongAnswers, submission.Problem)
		} else if submission.Result.Score < 60 {
			weakAnswers = append(weakAnswers, submission.Problem)
		}
	}

	result := models.InterviewResult{
		InterviewID:      bundle.Context.InterviewID,
		CandidateID:      bundle.Context.CandidateID,
		Transcript:       bundle.Session.Transcript,
		FlaggedBehaviors: bundle.Session.CheatingFlags,
		Questions:        questionResults,
		CodeSubmissions:  submissions,
		Duration:         bundle.DurationMinutes,
		Partial:          !bundle.Completed,
		CompletedAt:      e.now(),
	}

	if len(dimensionScores) == 0 {
		if bundle.Completed {
			return models.InterviewResult{}, ErrNoScores
		}
		result.Summary = "Interview ended before any answers could be evaluated."
		e.logger.Warn().
			Str("interview_id", bundle.Context.InterviewID).
			Msg("scoring aborted interview with no answers")
		return result, nil
	}

	score, err := Aggregate(dimensionScores, nil, bundle.Session.SentimentHistory)
	if err != nil {
		return models.InterviewResult{}, err
	}
	result.Scores = score

	summary := Summarize(score, strongAnswers, weakAnswers, experienceLevel(bundle.Context))
	result.Summary = summary.Summary
	result.Strengths = summary.Strengths
	result.Weaknesses = summary.Weaknesses
	result.Recommendations = summary.Recommendations

	e.logger.Info().
		Str("interview_id", bundle.Context.InterviewID).
		Int("overall", score.Overall).
		Str("recommendation", summary.HiringRecommendation).
		Bool("partial", result.Partial).
		Msg("interview scored")

	return result, nil
}

// questionTypeFor maps a question category to the structure-check type,
// falling back to the interview's own type for unknown categories.
func questionTypeFor(category string, fallback models.InterviewType) models.InterviewType {
	switch strings.ToLower(category) {
	case "behavioral", "experience", "situational", "motivation":
		return models.InterviewTypeBehavioral
	case "technical", "conceptual", "practical", "system_design":
		return models.InterviewTypeTechnical
	case "coding", "warmup", "medium", "challenging":
		return models.InterviewTypeCoding
	default:
		return fallback
	}
}

func questionFeedback(evaluation Evaluation) string {
	var notes []string
	if evaluation.Indicators.HasStructure {
		notes = append(notes, "well-structured answer")
	}
	if evaluation.Indicators.DemonstratesDepth {
		notes = append(notes, "demonstrates depth of knowledge")
	}
	if evaluation.Indicators.ShowsPracticalUnderstanding {
		notes = append(notes, "grounded in practical experience")
	}
	if evaluation.Indicators.TopicCoverage != nil && *evaluation.Indicators.TopicCoverage < 0.5 {
		notes = append(notes, "missed several expected topics")
	}

	if len(notes) == 0 {
		return "Answer would benefit from more structure and concrete examples."
	}
	return strings.ToUpper(notes[0][:1]) + notes[0][1:] + formatRest(notes[1:]) + "."
}

func formatRest(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	return "; " + strings.Join(notes, "; ")
}

func experienceLevel(ic models.InterviewContext) string {
	if ic.Resume != nil && ic.Resume.ExperienceLevel != "" {
		return ic.Resume.ExperienceLevel
	}
	return "mid"
}
