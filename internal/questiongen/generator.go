package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/llm"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

const (
	generateMaxTokens   = 4096
	followUpMaxTokens   = 512
	generateTemperature = 0.7

	// No follow-up is worth asking with less than three minutes left.
	minFollowUpMinutes = 3
)

// Generator produces tailored question sets through the language-model
// capability. Distribution planning and guidance assembly stay deterministic;
// only the question text itself comes from the model.
type Generator struct {
	llmClient llm.LLMClient
	logger    *zerolog.Logger
}

func NewGenerator(llmClient llm.LLMClient, logger *zerolog.Logger) *Generator {
	return &Generator{
		llmClient: llmClient,
		logger:    logger,
	}
}

// FollowUp is the model's answer-driven probe for one question.
type FollowUp struct {
	Question  string `json:"question"`
	Rationale string `json:"rationale"`
}

type generatedQuestion struct {
	Text           string   `json:"text"`
	Category       string   `json:"category"`
	ExpectedTopics []string `json:"expected_topics"`
	FollowUps      []string `json:"follow_ups"`
	TimeAllocation int      `json:"time_allocation"`
	Difficulty     string   `json:"difficulty"`
}

// Generate plans the question distribution for the interview context and asks
// the model to fill it in. The model call is retried once; a second failure
// is fatal to this step.
func (g *Generator) Generate(ctx context.Context, ic models.InterviewContext, jobDescription string) ([]models.Question, error) {
	count := QuestionCount(ic.Duration)
	if count == 0 {
		return nil, nil
	}

	distribution := PlanDistribution(ic.InterviewType, count)

	experienceLevel := ""
	if ic.Resume != nil {
		experienceLevel = ic.Resume.ExperienceLevel
	}

	prompt, err := g.buildGeneratePrompt(ic, jobDescription, count, distribution, experienceLevel)
	if err != nil {
		return nil, err
	}

	resp, err := g.llmClient.InvokeModelWithRetry(ctx, llm.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   generateMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Content)), &generated); err != nil {
		return nil, fmt.Errorf("failed to deserialize generated questions: %w", err)
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}

	questions := make([]models.Question, 0, len(generated))
	for _, q := range generated {
		questions = append(questions, models.Question{
			ID:             uuid.NewString(),
			Text:           q.Text,
			Category:       q.Category,
			ExpectedTopics: q.ExpectedTopics,
			FollowUps:      q.FollowUps,
			TimeAllocation: q.TimeAllocation,
			Difficulty:     models.Depth(q.Difficulty),
		})
	}

	g.logger.Info().
		Str("interview_id", ic.InterviewID).
		Str("interview_type", string(ic.InterviewType)).
		Int("requested", count).
		Int("generated", len(questions)).
		Msg("question set generated")

	return questions, nil
}

// GenerateFollowUp asks the model for one probe that builds on the answer.
// With less than three minutes remaining the follow-up is skipped entirely.
func (g *Generator) GenerateFollowUp(ctx context.Context, question models.Question, answer string, depth models.Depth, remainingMinutes float64) (FollowUp, error) {
	if remainingMinutes < minFollowUpMinutes {
		return FollowUp{Rationale: "Insufficient time for follow-up"}, nil
	}

	budget := remainingMinutes
	if budget > 5 {
		budget = 5
	}

	strategies := map[models.Depth]string{
		models.DepthLow:    "Ask for clarification or specific examples",
		models.DepthMedium: "Explore edge cases or alternative approaches",
		models.DepthHigh:   "Challenge assumptions or explore system-level implications",
	}

	prompt := fmt.Sprintf(`Original Question: %s
Candidate Answer: %s
Question Type: %s
Depth Level: %s
Strategy: %s

Generate a follow-up question that:
1. Builds on the candidate's answer
2. Explores deeper understanding
3. Can be answered in %.0f minutes
4. Reveals additional insights about the candidate's knowledge

Respond ONLY in JSON: {"question": "<string>", "rationale": "<string>"}`,
		question.Text, answer, question.Category, depth, strategies[depth], budget)

	resp, err := g.llmClient.InvokeModelWithRetry(ctx, llm.LLMRequest{
		Prompt:      prompt,
		MaxTokens:   followUpMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return FollowUp{}, fmt.Errorf("follow-up generation failed: %w", err)
	}

	var followUp FollowUp
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Content)), &followUp); err != nil {
		return FollowUp{}, fmt.Errorf("failed to deserialize follow-up: %w", err)
	}
	return followUp, nil
}

func (g *Generator) buildGeneratePrompt(ic models.InterviewContext, jobDescription string, count int, distribution Distribution, experienceLevel string) (string, error) {
	distributionJSON, err := json.MarshalIndent(distribution, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize distribution: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d interview questions for the following context:\n\n", count)
	fmt.Fprintf(&b, "Job Description:\n%s\n\n", jobDescription)
	fmt.Fprintf(&b, "Required Skills:\n%s\n\n", strings.Join(ic.Skills, ", "))
	fmt.Fprintf(&b, "Interview Type: %s\nDuration: %d minutes\n\n", ic.InterviewType, ic.Duration)

	if ic.Resume != nil {
		recentRole := ""
		if len(ic.Resume.Experience) > 0 {
			recentRole = ic.Resume.Experience[0].Role
		}
		fmt.Fprintf(&b, "Candidate Background:\n- Experience Level: %s\n- Key Skills: %s\n- Recent Role: %s\n\n",
			ic.Resume.ExperienceLevel, strings.Join(ic.Resume.Skills, ", "), recentRole)
	}

	fmt.Fprintf(&b, "Please generate questions with the following distribution:\n%s\n\n", distributionJSON)

	b.WriteString("Guidelines:\n")
	for _, line := range Guidelines(ic.InterviewType, ic.Depth, experienceLevel) {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	structureJSON, err := json.MarshalIndent(StructureFor(ic.InterviewType), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize example structure: %w", err)
	}
	fmt.Fprintf(&b, "\nExample question structure:\n%s\n", structureJSON)

	b.WriteString(`
For each question include:
1. The question text
2. Expected topics/themes in the answer
3. Follow-up questions
4. Time allocation
5. Difficulty level (LOW, MEDIUM, or HIGH)

Ensure questions progress logically and cover different aspects of the role.

Respond ONLY with a JSON array of objects:
[{"text": "<string>", "category": "<string>", "expected_topics": ["<string>"], "follow_ups": ["<string>"], "time_allocation": <minutes>, "difficulty": "<LOW|MEDIUM|HIGH>"}]`)

	return b.String(), nil
}
