package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/codeeval"
	"github.com/abdibrokhim/ai-interviewer/internal/conductor"
	"github.com/abdibrokhim/ai-interviewer/internal/guardrails"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
	"github.com/abdibrokhim/ai-interviewer/internal/questiongen"
	"github.com/abdibrokhim/ai-interviewer/internal/resume"
	"github.com/abdibrokhim/ai-interviewer/internal/scoring"
	"github.com/abdibrokhim/ai-interviewer/internal/sentiment"
)

var (
	ErrSessionNotFound = errors.New("interview session not found")
	ErrSessionExists   = errors.New("interview session already exists")
	ErrStillInProgress = errors.New("interview is still in progress")
)

// Store persists interview artifacts. A nil Store disables persistence.
type Store interface {
	SaveContext(ctx context.Context, ic models.InterviewContext) error
	SaveSession(ctx context.Context, interviewID string, session models.SessionState) error
	SaveResult(ctx context.Context, result models.InterviewResult) error
	GetResult(ctx context.Context, interviewID string) (*models.InterviewResult, error)
	SaveCodeEvaluation(ctx context.Context, interviewID string, problemID string, evaluation models.CodeEvaluationResult) error
}

// session is one live interview. Turns for a session are serialized by mu;
// different sessions proceed independently.
type session struct {
	mu          sync.Mutex
	conductor   *conductor.Conductor
	submissions []models.CodeSubmission
}

// Orchestrator sequences the interview pipeline: resume parsing, question
// generation, conducting, code evaluation and scoring.
type Orchestrator struct {
	parser    *resume.Parser
	generator *questiongen.Generator
	templates *questiongen.TemplateLibrary
	evaluator *codeeval.Evaluator
	scorer    *scoring.Engine
	guard     *guardrails.Engine
	store     Store
	logger    *zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewOrchestrator(
	parser *resume.Parser,
	generator *questiongen.Generator,
	templates *questiongen.TemplateLibrary,
	evaluator *codeeval.Evaluator,
	scorer *scoring.Engine,
	guard *guardrails.Engine,
	store Store,
	logger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		parser:    parser,
		generator: generator,
		templates: templates,
		evaluator: evaluator,
		scorer:    scorer,
		guard:     guard,
		store:     store,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
}

// PrepareQuestions fills in the question list for an interview context. Resume
// parsing is best-effort: a failed parse is logged and the interview proceeds
// without resume background. A failed generation falls back to the role
// template library when one matches.
func (o *Orchestrator) PrepareQuestions(ctx context.Context, ic *models.InterviewContext, resumeText string, jobDescription string) ([]models.Question, error) {
	if ic.Resume == nil && resumeText != "" {
		summary, err := o.parser.Parse(ctx, resumeText)
		if err != nil {
			o.logger.Warn().Err(err).
				Str("interview_id", ic.InterviewID).
				Msg("Resume parsing failed, continuing without resume background")
		} else {
			ic.Resume = summary
		}
	}

	questions, err := o.generator.Generate(ctx, *ic, jobDescription)
	if err != nil {
		if o.templates != nil && ctx.Err() == nil {
			if template, ok := o.templates.Lookup(ic.JobRole, ""); ok {
				o.logger.Warn().Err(err).
					Str("interview_id", ic.InterviewID).
					Str("template_id", template.ID).
					Msg("Question generation failed, using role template")
				ic.Questions = template.Questions
				return template.Questions, nil
			}
		}
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	ic.Questions = questions
	return questions, nil
}

// StartInterview prepares questions when the context has none, registers a
// live session and returns the interviewer's opening messages.
func (o *Orchestrator) StartInterview(ctx context.Context, ic models.InterviewContext, resumeText string, jobDescription string) ([]string, error) {
	if ic.InterviewID == "" {
		return nil, fmt.Errorf("interview_id is required")
	}

	o.mu.Lock()
	if _, exists := o.sessions[ic.InterviewID]; exists {
		o.mu.Unlock()
		return nil, ErrSessionExists
	}
	o.mu.Unlock()

	if len(ic.Questions) == 0 {
		if _, err := o.PrepareQuestions(ctx, &ic, resumeText, jobDescription); err != nil {
			return nil, err
		}
	}

	cond := conductor.NewConductor(ic, o.guard, &followUpSource{generator: o.generator, depth: ic.Depth}, o.logger)
	messages, err := cond.Start()
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	if _, exists := o.sessions[ic.InterviewID]; exists {
		o.mu.Unlock()
		return nil, ErrSessionExists
	}
	o.sessions[ic.InterviewID] = &session{conductor: cond}
	o.mu.Unlock()

	if o.store != nil {
		if err := o.store.SaveContext(ctx, ic); err != nil {
			o.logger.Error().Err(err).Str("interview_id", ic.InterviewID).Msg("Failed to persist interview context")
		}
	}
	o.snapshot(ctx, ic.InterviewID, cond)

	o.logger.Info().
		Str("interview_id", ic.InterviewID).
		Int("questions", len(ic.Questions)).
		Msg("Interview started")

	return messages, nil
}

// HandleMessage feeds one candidate turn to the session's conductor and
// returns the interviewer replies. A cancelled context aborts the session.
func (o *Orchestrator) HandleMessage(ctx context.Context, interviewID string, text string, audio *sentiment.AudioFeatures) ([]string, error) {
	sess, err := o.lookup(interviewID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if ctx.Err() != nil {
		sess.conductor.Abort()
		o.snapshot(context.Background(), interviewID, sess.conductor)
		return nil, ctx.Err()
	}

	messages, err := sess.conductor.HandleCandidateInput(ctx, text, audio)
	if err != nil {
		return nil, err
	}

	o.snapshot(ctx, interviewID, sess.conductor)
	return messages, nil
}

// RecordTabSwitch registers a browser tab switch for the session.
func (o *Orchestrator) RecordTabSwitch(ctx context.Context, interviewID string) error {
	sess, err := o.lookup(interviewID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.conductor.RecordTabSwitch()
	o.snapshot(ctx, interviewID, sess.conductor)
	return nil
}

// RecordFaceCount registers a camera frame observation for the session.
func (o *Orchestrator) RecordFaceCount(ctx context.Context, interviewID string, faceCount int, emotion string) error {
	sess, err := o.lookup(interviewID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.conductor.RecordFaceCount(faceCount, emotion)
	o.snapshot(ctx, interviewID, sess.conductor)
	return nil
}

// RecordSignals feeds a batch of client behavior signals to the session's
// cheating analysis and reports the resulting risk level.
func (o *Orchestrator) RecordSignals(ctx context.Context, interviewID string, signals sentiment.Signals) (models.Severity, error) {
	sess, err := o.lookup(interviewID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	risk := sess.conductor.RecordSignals(signals)
	o.snapshot(ctx, interviewID, sess.conductor)
	return risk, nil
}

// EvaluateCode runs a submission against the problem's test cases and records
// it on the session so it enters the final score.
func (o *Orchestrator) EvaluateCode(ctx context.Context, interviewID string, problem models.CodeProblem, code string, language string, timeSpentMin float64) (models.CodeEvaluationResult, error) {
	result, err := o.evaluator.Evaluate(ctx, problem, code, language, timeSpentMin)
	if err != nil {
		return models.CodeEvaluationResult{}, err
	}

	if interviewID != "" {
		if sess, lookupErr := o.lookup(interviewID); lookupErr == nil {
			sess.mu.Lock()
			sess.submissions = append(sess.submissions, models.CodeSubmission{
				ProblemID: problem.ID,
				Problem:   problem.Title,
				Code:      code,
				Language:  language,
				Result:    result,
			})
			sess.mu.Unlock()
		}

		if o.store != nil {
			if err := o.store.SaveCodeEvaluation(ctx, interviewID, problem.ID, result); err != nil {
				o.logger.Error().Err(err).Str("interview_id", interviewID).Msg("Failed to persist code evaluation")
			}
		}
	}

	return result, nil
}

// ScoreInterview produces the terminal InterviewResult for an ended session
// and releases the session. Scoring a live session is an error; use
// AbortInterview for early termination.
func (o *Orchestrator) ScoreInterview(ctx context.Context, interviewID string) (models.InterviewResult, error) {
	sess, err := o.lookup(interviewID)
	if err != nil {
		return models.InterviewResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.conductor.State() != conductor.StateEnded {
		return models.InterviewResult{}, ErrStillInProgress
	}

	return o.finish(ctx, interviewID, sess)
}

// AbortInterview terminates a live session early and scores whatever was
// collected, producing a partial result.
func (o *Orchestrator) AbortInterview(ctx context.Context, interviewID string) (models.InterviewResult, error) {
	sess, err := o.lookup(interviewID)
	if err != nil {
		return models.InterviewResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.conductor.Abort()
	return o.finish(ctx, interviewID, sess)
}

// ScoreBundle scores a conducted interview bundle directly, outside the live
// session registry. The stream worker uses this path.
func (o *Orchestrator) ScoreBundle(ctx context.Context, bundle conductor.Bundle, submissions []models.CodeSubmission) (models.InterviewResult, error) {
	result, err := o.scorer.ScoreInterview(bundle, submissions)
	if err != nil {
		return models.InterviewResult{}, err
	}

	if o.store != nil {
		if err := o.store.SaveResult(ctx, result); err != nil {
			o.logger.Error().Err(err).Str("interview_id", result.InterviewID).Msg("Failed to persist interview result")
		}
	}

	return result, nil
}

func (o *Orchestrator) finish(ctx context.Context, interviewID string, sess *session) (models.InterviewResult, error) {
	result, err := o.scorer.ScoreInterview(sess.conductor.Bundle(), sess.submissions)
	if err != nil {
		return models.InterviewResult{}, err
	}

	if o.store != nil {
		if err := o.store.SaveResult(ctx, result); err != nil {
			o.logger.Error().Err(err).Str("interview_id", interviewID).Msg("Failed to persist interview result")
		}
	}

	o.mu.Lock()
	delete(o.sessions, interviewID)
	o.mu.Unlock()

	o.logger.Info().
		Str("interview_id", interviewID).
		Int("overall", result.Scores.Overall).
		Bool("partial", result.Partial).
		Msg("Interview scored")

	return result, nil
}

func (o *Orchestrator) lookup(interviewID string) (*session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[interviewID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// snapshot persists the current session state. Persistence failures never
// interrupt a live interview.
func (o *Orchestrator) snapshot(ctx context.Context, interviewID string, cond *conductor.Conductor) {
	if o.store == nil {
		return
	}
	if err := o.store.SaveSession(ctx, interviewID, cond.Session()); err != nil {
		o.logger.Error().Err(err).Str("interview_id", interviewID).Msg("Failed to persist session snapshot")
	}
}

// followUpSource adapts the question generator to the conductor's follow-up
// interface.
type followUpSource struct {
	generator *questiongen.Generator
	depth     models.Depth
}

func (f *followUpSource) FollowUpText(ctx context.Context, question models.Question, answer string, remainingMinutes float64) (string, error) {
	followUp, err := f.generator.GenerateFollowUp(ctx, question, answer, f.depth, remainingMinutes)
	if err != nil {
		return "", err
	}
	return followUp.Question, nil
}
