package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/llm"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

// MockLLMClient is a mock implementation of llm.LLMClient for testing
type MockLLMClient struct {
	ResponseToReturn *llm.LLMResponse
	ErrorToReturn    error
	WasCalled        bool
	LastRequest      llm.LLMRequest
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	m.WasCalled = true
	m.LastRequest = request
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	return m.ResponseToReturn, nil
}

func (m *MockLLMClient) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return m.InvokeModel(ctx, request)
}

func TestParse(t *testing.T) {
	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{
			Content: "```json\n" + `{
				"skills": ["Go", "PostgreSQL", "Kubernetes"],
				"experience": [
					{"company": "Acme", "role": "Backend Engineer", "duration": "3 years 6 months"},
					{"company": "Widgets Inc", "role": "Junior Developer", "duration": "1 year"}
				],
				"education": [
					{"degree": "BSc Computer Science", "institution": "State University", "year": "2019"}
				]
			}` + "\n```",
		},
	}

	logger := zerolog.Nop()
	parser := NewParser(mockClient, &logger)

	summary, err := parser.Parse(context.Background(), "Backend engineer with Go and PostgreSQL...")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !mockClient.WasCalled {
		t.Error("Expected LLM client to be called")
	}
	if mockClient.LastRequest.Temperature != 0.0 {
		t.Errorf("Expected temperature 0.0, got %v", mockClient.LastRequest.Temperature)
	}
	if len(summary.Skills) != 3 {
		t.Errorf("Expected 3 skills, got %d", len(summary.Skills))
	}
	if len(summary.Experience) != 2 {
		t.Errorf("Expected 2 experience entries, got %d", len(summary.Experience))
	}
	// 3y6m + 1y = 4.5 years -> mid
	if summary.ExperienceLevel != "mid" {
		t.Errorf("Expected experience level 'mid', got %q", summary.ExperienceLevel)
	}
}

func TestParse_EmptyText(t *testing.T) {
	mockClient := &MockLLMClient{}
	logger := zerolog.Nop()
	parser := NewParser(mockClient, &logger)

	_, err := parser.Parse(context.Background(), "")
	if err == nil {
		t.Fatal("Expected error for empty resume text")
	}
	if mockClient.WasCalled {
		t.Error("Expected LLM client not to be called for empty text")
	}
}

func TestParse_ModelFailure(t *testing.T) {
	mockClient := &MockLLMClient{
		ErrorToReturn: errors.New("throttled"),
	}
	logger := zerolog.Nop()
	parser := NewParser(mockClient, &logger)

	_, err := parser.Parse(context.Background(), "Some resume text")
	if err == nil {
		t.Fatal("Expected error when model invocation fails")
	}
}

func TestParse_MalformedResponse(t *testing.T) {
	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{Content: "I could not parse this resume."},
	}
	logger := zerolog.Nop()
	parser := NewParser(mockClient, &logger)

	_, err := parser.Parse(context.Background(), "Some resume text")
	if err == nil {
		t.Fatal("Expected error for non-JSON response")
	}
}

func TestEstimateExperienceLevel(t *testing.T) {
	tests := []struct {
		name       string
		experience []models.ExperienceEntry
		wantYears  float64
		wantLevel  string
	}{
		{
			name:       "No experience",
			experience: nil,
			wantYears:  0,
			wantLevel:  "entry",
		},
		{
			name: "Months only",
			experience: []models.ExperienceEntry{
				{Duration: "8 months"},
			},
			wantYears: 0.7,
			wantLevel: "entry",
		},
		{
			name: "Junior band",
			experience: []models.ExperienceEntry{
				{Duration: "2 years"},
			},
			wantYears: 2,
			wantLevel: "junior",
		},
		{
			name: "Mixed years and months across roles",
			experience: []models.ExperienceEntry{
				{Duration: "3 years 6 months"},
				{Duration: "1 year"},
			},
			wantYears: 4.5,
			wantLevel: "mid",
		},
		{
			name: "Senior band",
			experience: []models.ExperienceEntry{
				{Duration: "4 years"},
				{Duration: "3 years"},
			},
			wantYears: 7,
			wantLevel: "senior",
		},
		{
			name: "Lead band",
			experience: []models.ExperienceEntry{
				{Duration: "6 years"},
				{Duration: "5 years 3 months"},
			},
			wantYears: 11.3,
			wantLevel: "lead",
		},
		{
			name: "Unparseable duration ignored",
			experience: []models.ExperienceEntry{
				{Duration: "2019 - 2021"},
				{Duration: "2 years"},
			},
			wantYears: 2,
			wantLevel: "junior",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, level := EstimateExperienceLevel(tt.experience)
			if years != tt.wantYears {
				t.Errorf("EstimateExperienceLevel() years = %v, want %v", years, tt.wantYears)
			}
			if level != tt.wantLevel {
				t.Errorf("EstimateExperienceLevel() level = %q, want %q", level, tt.wantLevel)
			}
		})
	}
}

func TestMatchSkills(t *testing.T) {
	candidate := []string{"Go", "PostgreSQL", "Docker", "GraphQL"}
	required := []string{"go", "postgres"}
	preferred := []string{"kubernetes", "docker"}

	match := MatchSkills(candidate, required, preferred)

	if len(match.MatchedRequired) != 2 {
		t.Errorf("Expected 2 matched required skills, got %v", match.MatchedRequired)
	}
	if len(match.MissingRequired) != 0 {
		t.Errorf("Expected no missing required skills, got %v", match.MissingRequired)
	}
	if len(match.MatchedPreferred) != 1 || match.MatchedPreferred[0] != "docker" {
		t.Errorf("Expected matched preferred [docker], got %v", match.MatchedPreferred)
	}
	if len(match.AdditionalSkills) != 1 || match.AdditionalSkills[0] != "GraphQL" {
		t.Errorf("Expected additional skills [GraphQL], got %v", match.AdditionalSkills)
	}
	// (2/2)*70 + (1/2)*30 = 85
	if match.MatchScore != 85 {
		t.Errorf("Expected match score 85, got %d", match.MatchScore)
	}
}

func TestMatchSkills_MissingRequired(t *testing.T) {
	candidate := []string{"Python"}
	required := []string{"Go", "Rust"}

	match := MatchSkills(candidate, required, nil)

	if len(match.MissingRequired) != 2 {
		t.Errorf("Expected 2 missing required skills, got %v", match.MissingRequired)
	}
	// (0/2)*70 + (0/1)*30 = 0
	if match.MatchScore != 0 {
		t.Errorf("Expected match score 0, got %d", match.MatchScore)
	}
}

func TestMatchSkills_NoPreferred(t *testing.T) {
	candidate := []string{"Go"}
	required := []string{"Go"}

	match := MatchSkills(candidate, required, nil)

	// Empty preferred list must not divide by zero: (1/1)*70 + (0/1)*30 = 70.
	if match.MatchScore != 70 {
		t.Errorf("Expected match score 70, got %d", match.MatchScore)
	}
}

func TestMatchSkills_SubstringBothDirections(t *testing.T) {
	match := MatchSkills([]string{"AWS Lambda"}, []string{"aws"}, nil)
	if len(match.MatchedRequired) != 1 {
		t.Errorf("Expected candidate 'AWS Lambda' to match required 'aws', got %v", match.MatchedRequired)
	}

	match = MatchSkills([]string{"node"}, []string{"Node.js"}, nil)
	if len(match.MatchedRequired) != 1 {
		t.Errorf("Expected candidate 'node' to match required 'Node.js', got %v", match.MatchedRequired)
	}
}
