package conductor

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/guardrails"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
	"github.com/abdibrokhim/ai-interviewer/internal/sentiment"
)

// State is the conductor's conversational state. ENDED is terminal.
type State string

const (
	StateNotStarted     State = "NOT_STARTED"
	StateGreeting       State = "GREETING"
	StateAwaitingAnswer State = "AWAITING_ANSWER"
	StateFollowUp       State = "FOLLOW_UP"
	StateTransitioning  State = "TRANSITIONING"
	StateConcluding     State = "CONCLUDING"
	StateEnded          State = "ENDED"
)

// Follow-ups are only worth asking with a comfortable time buffer left.
const minFollowUpBudgetMinutes = 5

// A short answer to a hard question is the trigger for probing deeper.
const shortAnswerThreshold = 100

// FollowUpSource phrases a follow-up question for an answer. The conductor
// decides whether to ask one; the source only provides the wording.
type FollowUpSource interface {
	FollowUpText(ctx context.Context, question models.Question, answer string, remainingMinutes float64) (string, error)
}

// Answer collects everything the candidate said for one question, the
// initial response plus any follow-up responses.
type Answer struct {
	Question        models.Question `json:"question"`
	Response        string          `json:"response"`
	FollowUpAsked   string          `json:"follow_up_asked,omitempty"`
	FollowUpReplies []string        `json:"follow_up_replies,omitempty"`
}

// Combined joins the initial response with follow-up replies for scoring.
func (a Answer) Combined() string {
	if len(a.FollowUpReplies) == 0 {
		return a.Response
	}
	parts := append([]string{a.Response}, a.FollowUpReplies...)
	return strings.Join(parts, " ")
}

// Bundle is the terminal artifact of a conducted interview, everything the
// scoring engine needs to produce an InterviewResult.
type Bundle struct {
	Context         models.InterviewContext `json:"context"`
	Session         models.SessionState     `json:"session"`
	Answers         []Answer                `json:"answers"`
	DurationMinutes float64                 `json:"duration_minutes"`
	Completed       bool                    `json:"completed"`
}

// Conductor drives one live interview. It owns the SessionState exclusively;
// callers must not invoke its methods concurrently for the same session.
type Conductor struct {
	guard     *guardrails.Engine
	followUps FollowUpSource
	logger    *zerolog.Logger

	now  func() time.Time
	rand *rand.Rand

	ic      models.InterviewContext
	state   State
	session models.SessionState
	answers []Answer

	followUpAsked map[int]bool
	aborted       bool
}

func NewConductor(ic models.InterviewContext, guard *guardrails.Engine, followUps FollowUpSource, logger *zerolog.Logger) *Conductor {
	return &Conductor{
		guard:         guard,
		followUps:     followUps,
		logger:        logger,
		now:           time.Now,
		rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		ic:            ic,
		state:         StateNotStarted,
		followUpAsked: make(map[int]bool),
	}
}

// State reports the current conversational state.
func (c *Conductor) State() State {
	return c.state
}

// Session exposes a copy of the session state for persistence snapshots.
func (c *Conductor) Session() models.SessionState {
	return c.session
}

// Start greets the candidate and opens the first question. An interview too
// short for even one question concludes immediately after the greeting.
func (c *Conductor) Start() ([]string, error) {
	if c.state != StateNotStarted {
		return nil, fmt.Errorf("interview already started (state %s)", c.state)
	}

	c.state = StateGreeting
	c.session.StartTime = c.now()

	var messages []string
	messages = append(messages, c.send(c.greeting()))

	if len(c.ic.Questions) == 0 {
		c.state = StateConcluding
		messages = append(messages, c.send(c.conclusion()))
		c.state = StateEnded
		return messages, nil
	}

	c.state = StateAwaitingAnswer
	c.session.QuestionIndex = 0
	messages = append(messages, c.send(c.ic.Questions[0].Text))

	c.logger.Info().
		Str("interview_id", c.ic.InterviewID).
		Int("questions", len(c.ic.Questions)).
		Int("duration_min", c.ic.Duration).
		Msg("interview started")

	return messages, nil
}

// HandleCandidateInput processes one candidate utterance: transcript append,
// guardrail input check, sentiment sampling, then answer handling. Empty
// input counts as an empty answer, not an error.
func (c *Conductor) HandleCandidateInput(ctx context.Context, text string, audio *sentiment.AudioFeatures) ([]string, error) {
	if c.state == StateEnded || c.state == StateNotStarted {
		return nil, fmt.Errorf("no interview in progress (state %s)", c.state)
	}

	c.appendTranscript(models.SpeakerCandidate, text)

	if text != "" {
		verdict, err := c.guard.CheckInput(text)
		if err != nil {
			return nil, fmt.Errorf("guardrail input check: %w", err)
		}
		if !verdict.Safe {
			c.logger.Warn().
				Str("interview_id", c.ic.InterviewID).
				Str("rule", verdict.Rule).
				Msg("guardrail redirected candidate input")
			return []string{c.send(verdict.Replacement)}, nil
		}
	}

	if audio != nil {
		audioSentiment := sentiment.AnalyzeAudio(*audio)
		c.session.SentimentHistory = append(c.session.SentimentHistory, models.SentimentSample{
			Timestamp: c.now(),
			Audio:     &audioSentiment,
		})
	}

	if c.state != StateAwaitingAnswer {
		return nil, nil
	}

	if text != "" && isClarificationRequest(text) {
		question := c.ic.Questions[c.session.QuestionIndex]
		return []string{c.send("Of course. Let me repeat the question: " + question.Text)}, nil
	}

	return c.handleAnswer(ctx, text)
}

// handleAnswer records the answer for the current question and either probes
// with a follow-up or transitions onward.
func (c *Conductor) handleAnswer(ctx context.Context, answer string) ([]string, error) {
	index := c.session.QuestionIndex
	question := c.ic.Questions[index]

	if c.followUpAsked[index] && len(c.answers) > index {
		c.answers[index].FollowUpReplies = append(c.answers[index].FollowUpReplies, answer)
	} else {
		c.answers = append(c.answers, Answer{Question: question, Response: answer})
	}

	remaining := c.RemainingMinutes()
	if c.shouldAskFollowUp(answer, remaining, index) {
		c.state = StateFollowUp
		followUp := c.followUpText(ctx, question, answer, remaining)
		c.answers[index].FollowUpAsked = followUp
		c.followUpAsked[index] = true
		c.state = StateAwaitingAnswer
		return []string{c.send(followUp)}, nil
	}

	return c.transition()
}

// shouldAskFollowUp probes only hard questions answered briefly, with enough
// time left, and at most once per question.
func (c *Conductor) shouldAskFollowUp(answer string, remainingMinutes float64, index int) bool {
	if remainingMinutes <= minFollowUpBudgetMinutes {
		return false
	}
	if c.followUpAsked[index] {
		return false
	}
	question := c.ic.Questions[index]
	return question.Difficulty == models.DepthHigh && len(answer) > 0 && len(answer) < shortAnswerThreshold
}

// followUpText asks the source for wording; if the capability fails, a fixed
// neutral probe keeps the interview moving.
func (c *Conductor) followUpText(ctx context.Context, question models.Question, answer string, remainingMinutes float64) string {
	text, err := c.followUps.FollowUpText(ctx, question, answer, remainingMinutes)
	if err != nil || text == "" {
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("interview_id", c.ic.InterviewID).
				Msg("follow-up generation failed, using fallback")
		}
		return "That's interesting. Can you elaborate on your approach and why you chose it?"
	}
	return text
}

// transition advances to the next question, or concludes when the question
// list or the time budget is exhausted.
func (c *Conductor) transition() ([]string, error) {
	c.state = StateTransitioning
	c.session.QuestionIndex++

	if c.session.QuestionIndex >= len(c.ic.Questions) || c.RemainingMinutes() <= 0 {
		c.state = StateConcluding
		message := c.send(c.conclusion())
		c.state = StateEnded
		c.logger.Info().
			Str("interview_id", c.ic.InterviewID).
			Int("questions_answered", len(c.answers)).
			Msg("interview concluded")
		return []string{message}, nil
	}

	next := c.ic.Questions[c.session.QuestionIndex]
	message := c.send(c.transitionPhrase() + " " + next.Text)
	c.state = StateAwaitingAnswer
	return []string{message}, nil
}

// RecordTabSwitch counts a tab-visibility loss and appends a cheating flag.
// Repeated switching escalates the severity. Conversational state is not
// affected.
func (c *Conductor) RecordTabSwitch() {
	c.session.TabSwitches++

	severity := models.SeverityMedium
	if c.session.TabSwitches > 2 {
		severity = models.SeverityHigh
	}
	c.session.CheatingFlags = append(c.session.CheatingFlags, models.CheatingFlag{
		Type:        models.FlagTabSwitch,
		Severity:    severity,
		Timestamp:   c.now(),
		Description: fmt.Sprintf("Tab switched %d time(s)", c.session.TabSwitches),
	})
}

// RecordFaceCount feeds a face-detection reading into the session: a facial
// sentiment sample plus cheating flags for zero or multiple faces.
func (c *Conductor) RecordFaceCount(faceCount int, emotion string) {
	facial, flags := sentiment.AnalyzeFace(sentiment.FaceFeatures{FaceCount: faceCount, PrimaryEmotion: emotion}, c.now())

	c.session.SentimentHistory = append(c.session.SentimentHistory, models.SentimentSample{
		Timestamp: c.now(),
		Facial:    &facial,
	})
	c.session.CheatingFlags = append(c.session.CheatingFlags, flags...)
}

// RecordSignals runs the composite cheating analysis over a batch of client
// behavior signals and appends the resulting flags.
func (c *Conductor) RecordSignals(signals sentiment.Signals) models.Severity {
	report := sentiment.AnalyzeCheatingSignals(signals, c.now())

	c.session.TabSwitches += signals.TabSwitches
	c.session.CheatingFlags = append(c.session.CheatingFlags, report.Flags...)

	if report.HasSuspiciousBehavior {
		c.logger.Warn().
			Str("interview_id", c.ic.InterviewID).
			Int("flags", len(report.Flags)).
			Str("risk", string(report.RiskLevel)).
			Msg("suspicious behavior detected")
	}
	return report.RiskLevel
}

// Abort ends the interview early, keeping whatever was collected so a
// partial result can still be produced.
func (c *Conductor) Abort() {
	if c.state == StateEnded {
		return
	}
	c.aborted = true
	c.state = StateEnded
	c.logger.Warn().
		Str("interview_id", c.ic.InterviewID).
		Int("questions_answered", len(c.answers)).
		Msg("interview aborted")
}

// Bundle packages the collected session for scoring. Completed is false when
// the interview was aborted before its natural conclusion.
func (c *Conductor) Bundle() Bundle {
	duration := 0.0
	if !c.session.StartTime.IsZero() {
		duration = c.now().Sub(c.session.StartTime).Minutes()
	}
	return Bundle{
		Context:         c.ic,
		Session:         c.session,
		Answers:         c.answers,
		DurationMinutes: duration,
		Completed:       c.state == StateEnded && !c.aborted,
	}
}

// RemainingMinutes is the time budget left, never negative.
func (c *Conductor) RemainingMinutes() float64 {
	elapsed := c.now().Sub(c.session.StartTime).Minutes()
	remaining := float64(c.ic.Duration) - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// send runs the outbound guardrail check, appends the (possibly sanitized)
// message to the transcript, and returns it.
func (c *Conductor) send(message string) string {
	verdict, err := c.guard.CheckOutput(message)
	if err == nil && !verdict.Safe {
		c.logger.Warn().
			Str("interview_id", c.ic.InterviewID).
			Str("rule", verdict.Rule).
			Msg("guardrail sanitized outbound message")
		message = verdict.Replacement
	}

	c.appendTranscript(models.SpeakerInterviewer, message)
	return message
}

func (c *Conductor) appendTranscript(speaker models.Speaker, text string) {
	c.session.Transcript = append(c.session.Transcript, models.Utterance{
		Speaker: speaker,
		Text:    text,
		At:      c.now(),
	})
}

func (c *Conductor) greeting() string {
	company := c.ic.CompanyName
	if company == "" {
		company = "the company"
	}

	return fmt.Sprintf(`Hello %s, welcome to your interview with %s. I'm your AI interviewer today, and I'll be conducting this %d-minute %s interview.

Before we begin, let me explain how this will work:
- I'll ask you %d questions
- Take your time to think through each answer
- Feel free to ask for clarification if needed
- I'll be taking notes throughout our conversation

Are you ready to begin?`,
		c.ic.CandidateName, company, c.ic.Duration, strings.ToLower(string(c.ic.InterviewType)), len(c.ic.Questions))
}

func (c *Conductor) conclusion() string {
	return fmt.Sprintf(`That brings us to the end of our interview. Thank you so much for your time and thoughtful responses, %s.

The next steps are:
- Your interview will be reviewed by the hiring team
- You'll receive feedback within the timeframe communicated by the recruiter
- If you have any questions about the process, please reach out to your point of contact

Do you have any final questions for me before we end?`, c.ic.CandidateName)
}

var transitionPhrases = []string{
	"Great, thank you for that answer. Let's move on to the next question.",
	"I appreciate your response. Now, I'd like to ask you about something else.",
	"Thank you. For our next topic,",
	"Excellent. Moving forward,",
	"That's helpful. Let me ask you another question:",
}

func (c *Conductor) transitionPhrase() string {
	return transitionPhrases[c.rand.Intn(len(transitionPhrases))]
}

var clarificationPatterns = []string{
	"can you explain",
	"can you clarify",
	"can you repeat",
	"what do you mean",
	"i don't understand",
	"could you rephrase",
	"didn't catch",
}

// isClarificationRequest spots a candidate asking about the question itself
// rather than answering it.
func isClarificationRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, pattern := range clarificationPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
