package resume

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/llm"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

const parseMaxTokens = 2048

// Parser extracts a structured summary from raw resume text through the
// language-model capability.
type Parser struct {
	llmClient llm.LLMClient
	logger    *zerolog.Logger
}

func NewParser(llmClient llm.LLMClient, logger *zerolog.Logger) *Parser {
	return &Parser{
		llmClient: llmClient,
		logger:    logger,
	}
}

// Parse asks the model for the structured fields and derives the experience
// level from the extracted history. The model call is retried once; a second
// failure is fatal to this step (callers may proceed without a resume).
func (p *Parser) Parse(ctx context.Context, resumeText string) (*models.ResumeSummary, error) {
	if resumeText == "" {
		return nil, fmt.Errorf("empty resume text")
	}

	resp, err := p.llmClient.InvokeModelWithRetry(ctx, llm.LLMRequest{
		Prompt:      buildParsePrompt(resumeText),
		MaxTokens:   parseMaxTokens,
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("resume parsing failed: %w", err)
	}

	var summary models.ResumeSummary
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Content)), &summary); err != nil {
		return nil, fmt.Errorf("failed to deserialize parsed resume: %w", err)
	}

	years, level := EstimateExperienceLevel(summary.Experience)
	summary.ExperienceLevel = level

	p.logger.Info().
		Int("skills", len(summary.Skills)).
		Float64("experience_years", years).
		Str("experience_level", level).
		Msg("resume parsed")

	return &summary, nil
}

func buildParsePrompt(resumeText string) string {
	return fmt.Sprintf(`Extract structured information from the following resume.

Resume Text:
%s

Please extract:
1. Technical skills (languages, frameworks, tools, databases, cloud platforms)
2. Work experience with company names, job titles, duration, and key responsibilities
3. Education details (degree, institution, year)

Respond ONLY in JSON:
{"skills": ["<string>"], "experience": [{"company": "<string>", "role": "<string>", "duration": "<e.g. 2 years 3 months>", "description": "<string>"}], "education": [{"degree": "<string>", "institution": "<string>", "year": "<string>"}]}`, resumeText)
}
