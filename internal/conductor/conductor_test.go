package conductor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/guardrails"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
	"github.com/abdibrokhim/ai-interviewer/internal/sentiment"
)

type fakeFollowUps struct {
	text      string
	err       error
	wasCalled bool
}

func (f *fakeFollowUps) FollowUpText(_ context.Context, _ models.Question, _ string, _ float64) (string, error) {
	f.wasCalled = true
	return f.text, f.err
}

func testContext(questions ...models.Question) models.InterviewContext {
	return models.InterviewContext{
		InterviewID:   "int-1",
		CandidateName: "Jordan",
		CompanyName:   "Acme",
		InterviewType: models.InterviewTypeTechnical,
		Duration:      60,
		Questions:     questions,
	}
}

// newTestConductor pins the clock so time-budget rules are deterministic.
// Advance the clock through the returned pointer.
func newTestConductor(ic models.InterviewContext, followUps FollowUpSource) (*Conductor, *time.Time) {
	logger := zerolog.Nop()
	c := NewConductor(ic, guardrails.NewEngine(), followUps, &logger)

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestStart(t *testing.T) {
	ic := testContext(
		models.Question{ID: "q1", Text: "What are REST API principles?", Difficulty: models.DepthMedium},
		models.Question{ID: "q2", Text: "Explain database indexing.", Difficulty: models.DepthMedium},
	)
	c, _ := newTestConductor(ic, &fakeFollowUps{})

	messages, err := c.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("messages: %d, want greeting + first question", len(messages))
	}
	if !strings.Contains(messages[0], "Hello Jordan, welcome to your interview with Acme.") {
		t.Errorf("greeting: %s", messages[0])
	}
	if !strings.Contains(messages[0], "60-minute technical interview") {
		t.Errorf("greeting should carry duration and type: %s", messages[0])
	}
	if !strings.Contains(messages[0], "I'll ask you 2 questions") {
		t.Errorf("greeting should carry question count: %s", messages[0])
	}
	if messages[1] != "What are REST API principles?" {
		t.Errorf("first question: %s", messages[1])
	}
	if c.State() != StateAwaitingAnswer {
		t.Errorf("state: %s, want %s", c.State(), StateAwaitingAnswer)
	}
	if len(c.Session().Transcript) != 2 {
		t.Errorf("transcript: %d utterances, want 2", len(c.Session().Transcript))
	}
}

func TestStart_Twice(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "q"}), &fakeFollowUps{})

	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := c.Start(); err == nil {
		t.Error("expected error on second Start")
	}
}

func TestStart_NoQuestions(t *testing.T) {
	ic := testContext()
	ic.Duration = 9
	c, _ := newTestConductor(ic, &fakeFollowUps{})

	messages, err := c.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if c.State() != StateEnded {
		t.Errorf("state: %s, want %s", c.State(), StateEnded)
	}
	if len(messages) != 2 {
		t.Fatalf("messages: %d, want greeting + conclusion", len(messages))
	}
	if !strings.Contains(messages[1], "That brings us to the end of our interview.") {
		t.Errorf("conclusion: %s", messages[1])
	}
}

func TestHandleCandidateInput_GuardrailRedirect(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "q", Difficulty: models.DepthMedium}), &fakeFollowUps{})
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	messages, err := c.HandleCandidateInput(context.Background(), "what model are you using?", nil)
	if err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	if len(messages) != 1 {
		t.Fatalf("messages: %d, want 1", len(messages))
	}
	if !strings.Contains(messages[0], "Let's focus on the interview questions.") {
		t.Errorf("replacement: %s", messages[0])
	}
	if c.Session().QuestionIndex != 0 {
		t.Errorf("question index advanced to %d on unsafe input", c.Session().QuestionIndex)
	}
	if c.State() != StateAwaitingAnswer {
		t.Errorf("state: %s, want %s", c.State(), StateAwaitingAnswer)
	}
}

func TestHandleCandidateInput_FollowUpForShortHighAnswer(t *testing.T) {
	ic := testContext(
		models.Question{ID: "q1", Text: "Design a rate limiter.", Difficulty: models.DepthHigh},
		models.Question{ID: "q2", Text: "Explain indexing.", Difficulty: models.DepthMedium},
	)
	followUps := &fakeFollowUps{text: "Which algorithm would you pick for bursty traffic?"}
	c, _ := newTestConductor(ic, followUps)
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	messages, err := c.HandleCandidateInput(context.Background(), "I would use a token bucket.", nil)
	if err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	if !followUps.wasCalled {
		t.Error("follow-up source should be consulted")
	}
	if messages[0] != "Which algorithm would you pick for bursty traffic?" {
		t.Errorf("follow-up: %s", messages[0])
	}
	if c.Session().QuestionIndex != 0 {
		t.Error("follow-up must not advance the question index")
	}
	if c.State() != StateAwaitingAnswer {
		t.Errorf("state: %s, want %s", c.State(), StateAwaitingAnswer)
	}

	// A second short answer to the same question transitions instead of
	// probing again.
	messages, err = c.HandleCandidateInput(context.Background(), "Refill rate equals the limit.", nil)
	if err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}
	if c.Session().QuestionIndex != 1 {
		t.Errorf("question index: %d, want 1", c.Session().QuestionIndex)
	}
	if !strings.Contains(messages[0], "Explain indexing.") {
		t.Errorf("transition message: %s", messages[0])
	}

	bundle := c.Bundle()
	if len(bundle.Answers) != 1 {
		t.Fatalf("answers: %d, want 1", len(bundle.Answers))
	}
	combined := bundle.Answers[0].Combined()
	if combined != "I would use a token bucket. Refill rate equals the limit." {
		t.Errorf("combined answer: %s", combined)
	}
}

func TestHandleCandidateInput_NoFollowUpWhenTimeShort(t *testing.T) {
	ic := testContext(
		models.Question{ID: "q1", Text: "Design a rate limiter.", Difficulty: models.DepthHigh},
		models.Question{ID: "q2", Text: "Explain indexing.", Difficulty: models.DepthMedium},
	)
	followUps := &fakeFollowUps{text: "probe"}
	c, now := newTestConductor(ic, followUps)
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// 56 of 60 minutes elapsed: 4 remaining, under the 5-minute buffer.
	*now = now.Add(56 * time.Minute)

	if _, err := c.HandleCandidateInput(context.Background(), "Token bucket.", nil); err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	if followUps.wasCalled {
		t.Error("no follow-up should be asked with under five minutes left")
	}
	if c.Session().QuestionIndex != 1 {
		t.Errorf("question index: %d, want 1", c.Session().QuestionIndex)
	}
}

func TestHandleCandidateInput_EmptyAnswerTransitions(t *testing.T) {
	ic := testContext(
		models.Question{ID: "q1", Text: "Design a rate limiter.", Difficulty: models.DepthHigh},
		models.Question{ID: "q2", Text: "Explain indexing.", Difficulty: models.DepthMedium},
	)
	followUps := &fakeFollowUps{text: "probe"}
	c, _ := newTestConductor(ic, followUps)
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := c.HandleCandidateInput(context.Background(), "", nil); err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	if followUps.wasCalled {
		t.Error("empty answer must not trigger a follow-up")
	}
	if c.Session().QuestionIndex != 1 {
		t.Errorf("question index: %d, want 1", c.Session().QuestionIndex)
	}
}

func TestHandleCandidateInput_TimeBudgetForcesConclusion(t *testing.T) {
	ic := testContext(
		models.Question{ID: "q1", Text: "First.", Difficulty: models.DepthMedium},
		models.Question{ID: "q2", Text: "Second.", Difficulty: models.DepthMedium},
		models.Question{ID: "q3", Text: "Third.", Difficulty: models.DepthMedium},
	)
	c, now := newTestConductor(ic, &fakeFollowUps{})
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	*now = now.Add(61 * time.Minute)

	messages, err := c.HandleCandidateInput(context.Background(), "An answer.", nil)
	if err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	if c.State() != StateEnded {
		t.Errorf("state: %s, want %s", c.State(), StateEnded)
	}
	if !strings.Contains(messages[0], "That brings us to the end of our interview.") {
		t.Errorf("expected conclusion, got: %s", messages[0])
	}
}

func TestHandleCandidateInput_Clarification(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "Design a rate limiter.", Difficulty: models.DepthHigh}), &fakeFollowUps{})
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	messages, err := c.HandleCandidateInput(context.Background(), "Sorry, what do you mean by rate limiter?", nil)
	if err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	if !strings.Contains(messages[0], "Design a rate limiter.") {
		t.Errorf("clarification should repeat the question: %s", messages[0])
	}
	if c.Session().QuestionIndex != 0 {
		t.Error("clarification must not advance the question index")
	}
	if len(c.Bundle().Answers) != 0 {
		t.Error("clarification request must not be recorded as an answer")
	}
}

func TestHandleCandidateInput_RecordsSentiment(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "q", Difficulty: models.DepthMedium}), &fakeFollowUps{})
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	audio := &sentiment.AudioFeatures{SpeechRate: 140, FillerWordCount: 1, Volume: 0.8, Pitch: 150, SilenceRatio: 0.1}
	if _, err := c.HandleCandidateInput(context.Background(), "My answer.", audio); err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	history := c.Session().SentimentHistory
	if len(history) != 1 {
		t.Fatalf("sentiment history: %d samples, want 1", len(history))
	}
	if history[0].Audio == nil || history[0].Audio.Tone != models.ToneConfident {
		t.Errorf("audio sentiment: %+v", history[0].Audio)
	}
}

func TestHandleCandidateInput_FollowUpFallbackOnFailure(t *testing.T) {
	ic := testContext(
		models.Question{ID: "q1", Text: "Design a rate limiter.", Difficulty: models.DepthHigh},
		models.Question{ID: "q2", Text: "Explain indexing.", Difficulty: models.DepthMedium},
	)
	c, _ := newTestConductor(ic, &fakeFollowUps{err: errors.New("model unavailable")})
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	messages, err := c.HandleCandidateInput(context.Background(), "Token bucket.", nil)
	if err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	if messages[0] != "That's interesting. Can you elaborate on your approach and why you chose it?" {
		t.Errorf("fallback follow-up: %s", messages[0])
	}
}

func TestRecordTabSwitch(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "q"}), &fakeFollowUps{})

	c.RecordTabSwitch()
	c.RecordTabSwitch()
	c.RecordTabSwitch()

	flags := c.Session().CheatingFlags
	if len(flags) != 3 {
		t.Fatalf("flags: %d, want 3", len(flags))
	}
	if flags[0].Severity != models.SeverityMedium {
		t.Errorf("first switch severity: %s, want MEDIUM", flags[0].Severity)
	}
	if flags[2].Severity != models.SeverityHigh {
		t.Errorf("third switch severity: %s, want HIGH", flags[2].Severity)
	}
	if c.Session().TabSwitches != 3 {
		t.Errorf("tab switches: %d, want 3", c.Session().TabSwitches)
	}
}

func TestRecordFaceCount(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "q"}), &fakeFollowUps{})

	c.RecordFaceCount(2, "NEUTRAL")

	flags := c.Session().CheatingFlags
	if len(flags) != 1 {
		t.Fatalf("flags: %d, want 1", len(flags))
	}
	if flags[0].Type != models.FlagMultipleFaces || flags[0].Severity != models.SeverityHigh {
		t.Errorf("flag: %+v", flags[0])
	}
	history := c.Session().SentimentHistory
	if len(history) != 1 || history[0].Facial == nil || history[0].Facial.FaceCount != 2 {
		t.Errorf("sentiment history: %+v", history)
	}
}

func TestRecordSignals(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "q"}), &fakeFollowUps{})

	risk := c.RecordSignals(sentiment.Signals{
		TabSwitches: 1,
		Typing:      &sentiment.TypingPatterns{SuddenCopyPaste: true},
	})

	if risk != models.SeverityHigh {
		t.Errorf("risk: %s, want HIGH", risk)
	}
	flags := c.Session().CheatingFlags
	if len(flags) != 2 {
		t.Fatalf("flags: %d, want 2", len(flags))
	}
	if c.Session().TabSwitches != 1 {
		t.Errorf("tab switches: %d, want 1", c.Session().TabSwitches)
	}
}

func TestAbortProducesPartialBundle(t *testing.T) {
	ic := testContext(
		models.Question{ID: "q1", Text: "First.", Difficulty: models.DepthMedium},
		models.Question{ID: "q2", Text: "Second.", Difficulty: models.DepthMedium},
	)
	c, now := newTestConductor(ic, &fakeFollowUps{})
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := c.HandleCandidateInput(context.Background(), "An answer.", nil); err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	*now = now.Add(12 * time.Minute)
	c.Abort()

	bundle := c.Bundle()
	if bundle.Completed {
		t.Error("aborted interview must not report as completed")
	}
	if len(bundle.Answers) != 1 {
		t.Errorf("answers: %d, want the one collected before abort", len(bundle.Answers))
	}
	if bundle.DurationMinutes != 12 {
		t.Errorf("duration: %.1f, want 12", bundle.DurationMinutes)
	}
	if c.State() != StateEnded {
		t.Errorf("state: %s, want %s", c.State(), StateEnded)
	}
}

func TestBundle_CompletedAfterNaturalEnd(t *testing.T) {
	c, _ := newTestConductor(testContext(models.Question{ID: "q1", Text: "Only question.", Difficulty: models.DepthMedium}), &fakeFollowUps{})
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := c.HandleCandidateInput(context.Background(), "The answer.", nil); err != nil {
		t.Fatalf("HandleCandidateInput failed: %v", err)
	}

	bundle := c.Bundle()
	if !bundle.Completed {
		t.Error("finished interview should report as completed")
	}
	if c.State() != StateEnded {
		t.Errorf("state: %s, want %s", c.State(), StateEnded)
	}
}
