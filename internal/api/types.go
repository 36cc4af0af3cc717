package api

import (
	"github.com/abdibrokhim/ai-interviewer/internal/models"
	"github.com/abdibrokhim/ai-interviewer/internal/sentiment"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// InterviewRequest carries the interview context plus the optional raw inputs
// the pipeline can enrich it with.
type InterviewRequest struct {
	Context        models.InterviewContext `json:"context"`
	ResumeText     string                  `json:"resume_text,omitempty"`
	JobDescription string                  `json:"job_description,omitempty"`
}

type QuestionsResponse struct {
	Questions []models.Question `json:"questions"`
}

type StartResponse struct {
	Messages []string `json:"messages"`
}

// MessageRequest is one candidate turn, optionally with audio features
// captured alongside the utterance.
type MessageRequest struct {
	Text  string                   `json:"text"`
	Audio *sentiment.AudioFeatures `json:"audio,omitempty"`
}

type MessageResponse struct {
	Messages []string `json:"messages"`
}

// EventRequest reports a proctoring observation from the candidate's browser.
type EventRequest struct {
	Type      string             `json:"type"` // tab_switch, face or signals
	FaceCount int                `json:"face_count,omitempty"`
	Emotion   string             `json:"emotion,omitempty"`
	Signals   *sentiment.Signals `json:"signals,omitempty"`
}

type EventResponse struct {
	RiskLevel models.Severity `json:"risk_level,omitempty"`
}

type CodeEvaluationRequest struct {
	InterviewID      string             `json:"interview_id,omitempty"`
	Problem          models.CodeProblem `json:"problem"`
	Code             string             `json:"code"`
	Language         string             `json:"language"`
	TimeSpentMinutes float64            `json:"time_spent_minutes,omitempty"`
}
