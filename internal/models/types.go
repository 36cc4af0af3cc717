package models

import (
	"time"
)

type InterviewType string

const (
	InterviewTypeTechnical   InterviewType = "TECHNICAL"
	InterviewTypeCoding      InterviewType = "CODING"
	InterviewTypeBehavioral  InterviewType = "BEHAVIORAL"
	InterviewTypeSituational InterviewType = "SITUATIONAL"
	InterviewTypeMixed       InterviewType = "MIXED"
)

type Depth string

const (
	DepthLow    Depth = "LOW"
	DepthMedium Depth = "MEDIUM"
	DepthHigh   Depth = "HIGH"
)

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Question belongs to an InterviewContext; presentation order matters.
type Question struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Category       string   `json:"category"`
	ExpectedTopics []string `json:"expected_topics,omitempty"`
	Difficulty     Depth    `json:"difficulty"`
	TimeAllocation int      `json:"time_allocation,omitempty"`
	FollowUps      []string `json:"follow_ups,omitempty"`
}

type ExperienceEntry struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

// ResumeSummary is the structured form of a candidate resume as supplied by
// the language-model capability. The core never scrapes resume text itself.
type ResumeSummary struct {
	Skills          []string          `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	ExperienceLevel string            `json:"experience_level,omitempty"`
}

// InterviewContext is created once per scheduled interview and owned by the
// orchestrator. It is immutable while the interview is being conducted.
type InterviewContext struct {
	InterviewID    string         `json:"interview_id"`
	CandidateID    string         `json:"candidate_id,omitempty"`
	CandidateName  string         `json:"candidate_name"`
	CandidateEmail string         `json:"candidate_email"`
	CompanyID      string         `json:"company_id"`
	CompanyName    string         `json:"company_name,omitempty"`
	JobID          string         `json:"job_id,omitempty"`
	JobRole        string         `json:"job_role,omitempty"`
	InterviewType  InterviewType  `json:"interview_type"`
	Skills         []string       `json:"skills"`
	Depth          Depth          `json:"depth"`
	Duration       int            `json:"duration"` // minutes, 10-120
	Questions      []Question     `json:"questions"`
	Resume         *ResumeSummary `json:"resume,omitempty"`
}

type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerCandidate   Speaker = "candidate"
)

type Utterance struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

type Pace string

const (
	PaceSlow   Pace = "SLOW"
	PaceNormal Pace = "NORMAL"
	PaceFast   Pace = "FAST"
)

type Tone string

const (
	ToneNervous   Tone = "NERVOUS"
	ToneConfident Tone = "CONFIDENT"
	ToneNeutral   Tone = "NEUTRAL"
	ToneStressed  Tone = "STRESSED"
)

type VolumeLevel string

const (
	VolumeLow    VolumeLevel = "LOW"
	VolumeNormal VolumeLevel = "NORMAL"
	VolumeHigh   VolumeLevel = "HIGH"
)

type AudioSentiment struct {
	Confidence float64     `json:"confidence"` // [0,1]
	Pace       Pace        `json:"pace"`
	Tone       Tone        `json:"tone"`
	Volume     VolumeLevel `json:"volume"`
}

type FacialSentiment struct {
	Detected  bool   `json:"detected"`
	Emotion   string `json:"emotion"`
	FaceCount int    `json:"face_count"`
}

// SentimentSample is an append-only reading, ordered by time.
type SentimentSample struct {
	Timestamp time.Time        `json:"timestamp"`
	Audio     *AudioSentiment  `json:"audio_sentiment,omitempty"`
	Facial    *FacialSentiment `json:"facial_sentiment,omitempty"`
}

type FlagType string

const (
	FlagTabSwitch         FlagType = "TAB_SWITCH"
	FlagMultipleFaces     FlagType = "MULTIPLE_FACES"
	FlagNoFace            FlagType = "NO_FACE"
	FlagSuspiciousAudio   FlagType = "SUSPICIOUS_AUDIO"
	FlagOffTopic          FlagType = "OFF_TOPIC"
	FlagCoachingSuspected FlagType = "COACHING_SUSPECTED"
	FlagUnusualPause      FlagType = "UNUSUAL_PAUSE"
	FlagCopyPaste         FlagType = "COPY_PASTE"
	FlagUnusualTyping     FlagType = "UNUSUAL_TYPING"
	FlagSuspiciousGaze    FlagType = "SUSPICIOUS_BEHAVIOR"
)

type CheatingFlag struct {
	Type        FlagType  `json:"type"`
	Severity    Severity  `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// SessionState is exclusively owned by the conductor while an interview is
// live. One conductor turn mutates it at a time.
type SessionState struct {
	StartTime        time.Time         `json:"start_time"`
	QuestionIndex    int               `json:"question_index"`
	Transcript       []Utterance       `json:"transcript"`
	SentimentHistory []SentimentSample `json:"sentiment_history"`
	TabSwitches      int               `json:"tab_switches"`
	CheatingFlags    []CheatingFlag    `json:"cheating_flags"`
}

type ProblemDifficulty string

const (
	ProblemEasy   ProblemDifficulty = "EASY"
	ProblemMedium ProblemDifficulty = "MEDIUM"
	ProblemHard   ProblemDifficulty = "HARD"
)

type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

// CodeProblem is immutable reference data.
type CodeProblem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Examples    []Example         `json:"examples"`
	Constraints []string          `json:"constraints"`
	TestCases   []TestCase        `json:"test_cases"`
	Difficulty  ProblemDifficulty `json:"difficulty"`
	TimeLimit   int               `json:"time_limit,omitempty"`   // seconds per case
	MemoryLimit int               `json:"memory_limit,omitempty"` // MB
}

type TestCaseResult struct {
	Passed         bool    `json:"passed"`
	Input          string  `json:"input"`
	ExpectedOutput string  `json:"expected_output"`
	ActualOutput   string  `json:"actual_output"`
	ExecutionTime  float64 `json:"execution_time,omitempty"` // seconds
	Memory         int     `json:"memory,omitempty"`         // KB
	Status         string  `json:"status"`
	IsHidden       bool    `json:"is_hidden"`
}

type Complexity struct {
	Time  string `json:"time"`
	Space string `json:"space"`
}

type QualityAnalysis struct {
	HasComments         bool     `json:"has_comments"`
	HasDescriptiveNames bool     `json:"has_descriptive_names"`
	HasErrorHandling    bool     `json:"has_error_handling"`
	HasEdgeCases        bool     `json:"has_edge_cases"`
	Complexity          string   `json:"complexity"` // low, medium, high
	LineCount           int      `json:"line_count"`
	Suggestions         []string `json:"suggestions"`
}

type CodeEvaluationResult struct {
	Success        bool             `json:"success"`
	PassedTests    int              `json:"passed_tests"`
	TotalTests     int              `json:"total_tests"`
	VisibleResults []TestCaseResult `json:"visible_results"`
	AllResults     []TestCaseResult `json:"-"`
	Complexity     Complexity       `json:"complexity"`
	Quality        QualityAnalysis  `json:"quality"`
	QualityScore   int              `json:"quality_score"`
	Score          int              `json:"score"` // 0-100
	Feedback       string           `json:"feedback"`
}

// Score holds the four dimensions plus the overall value. Overall is always
// derived from the dimensions, never set independently.
type Score struct {
	Communication  int `json:"communication"`
	Technical      int `json:"technical"`
	ProblemSolving int `json:"problem_solving"`
	Confidence     int `json:"confidence"`
	Overall        int `json:"overall"`
}

type QuestionResult struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
}

type CodeSubmission struct {
	ProblemID string               `json:"problem_id"`
	Problem   string               `json:"problem"`
	Code      string               `json:"code"`
	Language  string               `json:"language"`
	Result    CodeEvaluationResult `json:"result"`
}

// InterviewResult is the terminal artifact, produced at most once per
// interview by the scoring engine.
type InterviewResult struct {
	InterviewID      string           `json:"interview_id"`
	CandidateID      string           `json:"candidate_id,omitempty"`
	Scores           Score            `json:"scores"`
	Transcript       []Utterance      `json:"transcript"`
	Summary          string           `json:"summary"`
	Strengths        []string         `json:"strengths"`
	Weaknesses       []string         `json:"weaknesses"`
	Recommendations  []string         `json:"recommendations"`
	FlaggedBehaviors []CheatingFlag   `json:"flagged_behaviors,omitempty"`
	Questions        []QuestionResult `json:"questions_answered"`
	CodeSubmissions  []CodeSubmission `json:"code_submissions,omitempty"`
	Duration         float64          `json:"duration"` // minutes
	Partial          bool             `json:"partial,omitempty"`
	CompletedAt      time.Time        `json:"completed_at"`
}

// QuestionTemplate is a structured, reusable question set for a role.
type QuestionTemplate struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	JobRole   string     `json:"job_role"`
	Category  string     `json:"category"`
	Questions []Question `json:"questions"`
}
