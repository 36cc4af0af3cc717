package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/conductor"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

func audioSample(confidence float64, tone models.Tone, at time.Time) models.SentimentSample {
	return models.SentimentSample{
		Timestamp: at,
		Audio:     &models.AudioSentiment{Confidence: confidence, Tone: tone, Pace: models.PaceNormal, Volume: models.VolumeNormal},
	}
}

func TestScoreQuestion(t *testing.T) {
	tests := []struct {
		name         string
		question     models.Question
		answer       string
		questionType models.InterviewType
		want         int
	}{
		{
			name:         "Bare minimal answer, low difficulty",
			question:     models.Question{Difficulty: models.DepthLow},
			answer:       "No.",
			questionType: models.InterviewTypeBehavioral,
			want:         54, // 60 * 0.9
		},
		{
			name:         "Technical answer with connective and half topic coverage",
			question:     models.Question{Difficulty: models.DepthMedium, ExpectedTopics: []string{"indexing", "b-tree"}},
			answer:       "Indexing matters because lookups get faster.",
			questionType: models.InterviewTypeTechnical,
			want:         78, // 60 + 10 structure + round(0.5*15)
		},
		{
			name:         "Same answer at high difficulty",
			question:     models.Question{Difficulty: models.DepthHigh, ExpectedTopics: []string{"indexing", "b-tree"}},
			answer:       "Indexing matters because lookups get faster.",
			questionType: models.InterviewTypeTechnical,
			want:         86, // round(78 * 1.1)
		},
		{
			name:         "Everything present caps at 100",
			question:     models.Question{Difficulty: models.DepthHigh, ExpectedTopics: []string{"caching"}},
			answer:       "The situation required caching. There is a trade-off, and for example in my last project we implemented it.",
			questionType: models.InterviewTypeBehavioral,
			want:         100,
		},
		{
			name:         "Multi-sentence structure for coding type",
			question:     models.Question{Difficulty: models.DepthMedium},
			answer:       "First sentence here. Second sentence here. Third one.",
			questionType: models.InterviewTypeCoding,
			want:         70, // 60 + 10 structure
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			evaluation := ScoreQuestion(test.question, test.answer, test.questionType)
			if evaluation.SuggestedScore != test.want {
				t.Errorf("suggested score: %d, want %d", evaluation.SuggestedScore, test.want)
			}
		})
	}
}

func TestScoreQuestion_CriteriaAndIndicators(t *testing.T) {
	question := models.Question{Difficulty: models.DepthHigh, ExpectedTopics: []string{"scope", "hoisting"}}
	evaluation := ScoreQuestion(question, "Because of scope rules, hoisting applies.", models.InterviewTypeTechnical)

	if evaluation.Indicators.TopicCoverage == nil || *evaluation.Indicators.TopicCoverage != 1.0 {
		t.Errorf("topic coverage: %v, want 1.0", evaluation.Indicators.TopicCoverage)
	}
	if !evaluation.Indicators.HasStructure {
		t.Error("expected structure indicator for connective keywords")
	}

	wantCriteria := []string{"clarity", "completeness", "accuracy", "conceptual understanding", "practical application", "best practices", "nuanced understanding", "innovative thinking", "system-level perspective"}
	if len(evaluation.Criteria) != len(wantCriteria) {
		t.Fatalf("criteria: %v", evaluation.Criteria)
	}
	for i, want := range wantCriteria {
		if evaluation.Criteria[i] != want {
			t.Errorf("criteria[%d]: %s, want %s", i, evaluation.Criteria[i], want)
		}
	}
}

func TestAggregate(t *testing.T) {
	scores := []DimensionScore{
		{Communication: 80, Technical: 80, ProblemSolving: 80, Confidence: 80},
		{Communication: 60, Technical: 70, ProblemSolving: 90, Confidence: 50},
	}

	got, err := Aggregate(scores, nil, nil)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := models.Score{Communication: 70, Technical: 75, ProblemSolving: 85, Confidence: 65, Overall: 76}
	if got != want {
		t.Errorf("score: %+v, want %+v", got, want)
	}
}

func TestAggregate_Weighted(t *testing.T) {
	scores := []DimensionScore{
		{Communication: 100, Technical: 100, ProblemSolving: 100, Confidence: 100},
		{Communication: 50, Technical: 50, ProblemSolving: 50, Confidence: 50},
	}

	got, err := Aggregate(scores, []float64{3, 1}, nil)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if got.Technical != 88 {
		t.Errorf("technical: %d, want 88", got.Technical)
	}
	if got.Overall != 88 {
		t.Errorf("overall: %d, want 88", got.Overall)
	}
}

func TestAggregate_SentimentAdjustment(t *testing.T) {
	scores := []DimensionScore{{Communication: 70, Technical: 75, ProblemSolving: 85, Confidence: 65}}
	now := time.Now()
	history := []models.SentimentSample{
		audioSample(0.8, models.ToneConfident, now),
		audioSample(0.6, models.ToneNeutral, now),
		{Timestamp: now}, // facial-only sample, ignored for the mean
	}

	got, err := Aggregate(scores, nil, history)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// mean confidence 0.7 -> adjustment +0.04 -> 65 * 1.04 = 67.6 -> 68
	if got.Confidence != 68 {
		t.Errorf("confidence: %d, want 68", got.Confidence)
	}
	if got.Overall != Overall(got) {
		t.Errorf("overall %d does not match dimension weighting %d", got.Overall, Overall(got))
	}
}

func TestAggregate_SentimentAdjustmentCapped(t *testing.T) {
	scores := []DimensionScore{{Communication: 100, Technical: 100, ProblemSolving: 100, Confidence: 100}}
	now := time.Now()
	history := []models.SentimentSample{
		audioSample(1.0, models.ToneConfident, now),
		audioSample(1.0, models.ToneConfident, now),
	}

	got, err := Aggregate(scores, nil, history)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// mean confidence 1.0 -> adjustment +0.1; 100 * 1.1 saturates at 100
	if got.Confidence != 100 {
		t.Errorf("confidence: %d, want 100", got.Confidence)
	}
	if got.Overall != 100 {
		t.Errorf("overall: %d, want 100", got.Overall)
	}
}

func TestAggregate_Errors(t *testing.T) {
	if _, err := Aggregate(nil, nil, nil); !errors.Is(err, ErrNoScores) {
		t.Errorf("empty scores: %v, want ErrNoScores", err)
	}

	scores := []DimensionScore{{Communication: 70}}
	if _, err := Aggregate(scores, []float64{1, 2}, nil); err == nil {
		t.Error("expected error for mismatched weights")
	}
	if _, err := Aggregate(scores, []float64{0}, nil); err == nil {
		t.Error("expected error for zero total weight")
	}
}

func TestHiringRecommendation(t *testing.T) {
	tests := []struct {
		overall         int
		experienceLevel string
		want            string
	}{
		{82, "senior", RecommendStrongHire},
		{75, "mid", RecommendHire},
		{65, "junior", RecommendConsider},
		{65, "senior", RecommendNoHire},
		{59, "junior", RecommendNoHire},
	}

	for _, test := range tests {
		got := HiringRecommendation(test.overall, test.experienceLevel)
		if got != test.want {
			t.Errorf("HiringRecommendation(%d, %s) = %s, want %s", test.overall, test.experienceLevel, got, test.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	score := models.Score{Communication: 85, Technical: 55, ProblemSolving: 70, Confidence: 62, Overall: 66}
	strong := []string{"q1", "q2", "q3", "q4"}
	weak := []string{"q5"}

	summary := Summarize(score, strong, weak, "junior")

	foundStrength := false
	for _, s := range summary.Strengths {
		if s == "Excellent communication skills" {
			foundStrength = true
		}
		if s == "Particularly strong in: q1, q2, q3" {
			foundStrength = foundStrength && true
		}
	}
	if !foundStrength {
		t.Errorf("strengths: %v", summary.Strengths)
	}
	if summary.Strengths[len(summary.Strengths)-1] != "Particularly strong in: q1, q2, q3" {
		t.Errorf("strong answers not capped at 3: %v", summary.Strengths)
	}

	wantWeak := "Technical knowledge gaps identified"
	if summary.Weaknesses[0] != wantWeak {
		t.Errorf("weaknesses: %v, want first %q", summary.Weaknesses, wantWeak)
	}

	if summary.HiringRecommendation != RecommendConsider {
		t.Errorf("recommendation: %s", summary.HiringRecommendation)
	}
	if !contains(summary.Summary, "satisfactory overall performance") {
		t.Errorf("summary: %s", summary.Summary)
	}
	if !contains(summary.Summary, "particular strength in communication") {
		t.Errorf("summary should name the strongest area: %s", summary.Summary)
	}
}

func TestConfidenceTrend(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		confidences []float64
		want        string
	}{
		{"Increasing", []float64{0.4, 0.4, 0.7, 0.7}, TrendIncreasing},
		{"Decreasing", []float64{0.8, 0.8, 0.5, 0.5}, TrendDecreasing},
		{"Stable", []float64{0.6, 0.62, 0.61, 0.6}, TrendStable},
		{"Too few samples", []float64{0.1, 0.9}, TrendStable},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var history []models.SentimentSample
			for _, c := range test.confidences {
				history = append(history, audioSample(c, models.ToneNeutral, now))
			}
			if got := ConfidenceTrend(history); got != test.want {
				t.Errorf("trend: %s, want %s", got, test.want)
			}
		})
	}
}

func TestIdentifyPatterns_StressPoints(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	history := []models.SentimentSample{
		audioSample(0.6, models.ToneNeutral, base),
		audioSample(0.3, models.ToneStressed, base.Add(time.Minute)),
		audioSample(0.3, models.ToneNervous, base.Add(2*time.Minute)),
	}

	patterns := IdentifyPatterns(history)
	if len(patterns.StressPoints) != 2 {
		t.Fatalf("stress points: %d, want 2", len(patterns.StressPoints))
	}
	if !patterns.StressPoints[0].Equal(base.Add(time.Minute)) {
		t.Errorf("first stress point: %v", patterns.StressPoints[0])
	}
}

func TestScoreInterview(t *testing.T) {
	logger := zerolog.Nop()
	engine := NewEngine(&logger)

	bundle := conductor.Bundle{
		Context: models.InterviewContext{
			InterviewID:   "int-1",
			InterviewType: models.InterviewTypeTechnical,
			Resume:        &models.ResumeSummary{ExperienceLevel: "senior"},
		},
		Session: models.SessionState{
			Transcript: []models.Utterance{{Speaker: models.SpeakerCandidate, Text: "answer"}},
		},
		Answers: []conductor.Answer{
			{
				Question: models.Question{ID: "q1", Text: "Explain indexing.", Category: "technical", Difficulty: models.DepthMedium, ExpectedTopics: []string{"b-tree"}},
				Response: "Indexing uses a b-tree because lookups must scale. For example, in my last project we implemented one.",
			},
		},
		DurationMinutes: 42,
		Completed:       true,
	}

	result, err := engine.ScoreInterview(bundle, nil)
	if err != nil {
		t.Fatalf("ScoreInterview failed: %v", err)
	}

	if result.InterviewID != "int-1" {
		t.Errorf("interview id: %s", result.InterviewID)
	}
	if len(result.Questions) != 1 {
		t.Fatalf("question results: %d, want 1", len(result.Questions))
	}
	// 60 + 10 structure + 15 depth + 10 practical + 15 coverage = 110 -> capped
	if result.Questions[0].Score != 100 {
		t.Errorf("question score: %d, want 100", result.Questions[0].Score)
	}
	if result.Scores.Overall != Overall(result.Scores) {
		t.Errorf("overall %d violates the dimension weighting", result.Scores.Overall)
	}
	if result.Partial {
		t.Error("completed bundle must not be partial")
	}
	if result.Duration != 42 {
		t.Errorf("duration: %.0f", result.Duration)
	}
	if len(result.Strengths) == 0 {
		t.Error("expected strengths for a 100-score answer")
	}
}

func TestScoreInterview_CodeSubmissionsEnterAggregate(t *testing.T) {
	logger := zerolog.Nop()
	engine := NewEngine(&logger)

	bundle := conductor.Bundle{
		Context:   models.InterviewContext{InterviewID: "int-2", InterviewType: models.InterviewTypeCoding},
		Completed: true,
		Answers: []conductor.Answer{
			{Question: models.Question{ID: "q1", Text: "Warmup.", Category: "coding", Difficulty: models.DepthLow}, Response: "Done."},
		},
	}
	submissions := []models.CodeSubmission{
		{ProblemID: "p1", Problem: "Two sum", Result: models.CodeEvaluationResult{Score: 90}},
	}

	result, err := engine.ScoreInterview(bundle, submissions)
	if err != nil {
		t.Fatalf("ScoreInterview failed: %v", err)
	}

	// answer scores 54, submission 90: technical mean = 72
	if result.Scores.Technical != 72 {
		t.Errorf("technical: %d, want 72", result.Scores.Technical)
	}
	if len(result.CodeSubmissions) != 1 {
		t.Errorf("code submissions: %d, want 1", len(result.CodeSubmissions))
	}
}

func TestScoreInterview_AbortedWithoutAnswers(t *testing.T) {
	logger := zerolog.Nop()
	engine := NewEngine(&logger)

	bundle := conductor.Bundle{
		Context: models.InterviewContext{InterviewID: "int-3"},
		Session: models.SessionState{
			Transcript: []models.Utterance{{Speaker: models.SpeakerInterviewer, Text: "greeting"}},
		},
		Completed: false,
	}

	result, err := engine.ScoreInterview(bundle, nil)
	if err != nil {
		t.Fatalf("ScoreInterview failed: %v", err)
	}

	if !result.Partial {
		t.Error("aborted bundle must produce a partial result")
	}
	if len(result.Transcript) != 1 {
		t.Error("partial result must keep the transcript")
	}
	if result.Scores != (models.Score{}) {
		t.Errorf("partial result without answers must not carry scores: %+v", result.Scores)
	}
}

func TestScoreInterview_CompletedWithoutAnswers(t *testing.T) {
	logger := zerolog.Nop()
	engine := NewEngine(&logger)

	_, err := engine.ScoreInterview(conductor.Bundle{Completed: true}, nil)
	if !errors.Is(err, ErrNoScores) {
		t.Errorf("error: %v, want ErrNoScores", err)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
