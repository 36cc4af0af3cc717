package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/codeeval"
	"github.com/abdibrokhim/ai-interviewer/internal/config"
	"github.com/abdibrokhim/ai-interviewer/internal/guardrails"
	"github.com/abdibrokhim/ai-interviewer/internal/llm"
	"github.com/abdibrokhim/ai-interviewer/internal/llm/bedrock"
	"github.com/abdibrokhim/ai-interviewer/internal/llm/gpt"
	"github.com/abdibrokhim/ai-interviewer/internal/orchestrator"
	"github.com/abdibrokhim/ai-interviewer/internal/questiongen"
	"github.com/abdibrokhim/ai-interviewer/internal/resume"
	"github.com/abdibrokhim/ai-interviewer/internal/sandbox/judge0"
	"github.com/abdibrokhim/ai-interviewer/internal/scoring"
	"github.com/abdibrokhim/ai-interviewer/internal/store/postgres"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
	SandboxKey      string
	PostgresHost    string
	PostgresPort    string
	PostgresUser    string
	PostgresPass    string
	PostgresDB      string
	PostgresSSLMode string
	RedisAddr       string
	RedisPassword   string
}

type Dependencies struct {
	Orchestrator *orchestrator.Orchestrator
	Store        orchestrator.Store
	Logger       *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		SandboxKey:      getEnv("SANDBOX_API_KEY", ""),
		PostgresHost:    getEnv("POSTGRES_HOST", ""),
		PostgresPort:    getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:    getEnv("POSTGRES_USER", "postgres"),
		PostgresPass:    getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:      getEnv("POSTGRES_DB", "interviewer"),
		PostgresSSLMode: getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	// Interview defaults, sandbox endpoint and template path from YAML
	interviewConfig, err := config.LoadInterviewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load interview config: %w", err)
	}

	// Code execution sandbox
	runner, err := judge0.NewClient(interviewConfig.Sandbox.APIURL, cfg.SandboxKey, interviewConfig.Sandbox.APIHost)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox client: %w", err)
	}

	// Role question templates
	templateData, err := os.ReadFile(interviewConfig.Templates.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question templates: %w", err)
	}
	templates, err := questiongen.ParseTemplateLibrary(templateData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse question templates: %w", err)
	}

	// Persistence is optional; without a Postgres host the pipeline runs
	// in-memory only.
	var store orchestrator.Store
	if cfg.PostgresHost != "" {
		pg, err := postgres.New(ctx, postgres.Config{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSLMode,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		store = pg
	}

	orch := orchestrator.NewOrchestrator(
		resume.NewParser(llmClient, logger),
		questiongen.NewGenerator(llmClient, logger),
		templates,
		codeeval.NewEvaluator(runner, logger),
		scoring.NewEngine(logger),
		guardrails.NewEngine(),
		store,
		logger,
	)

	return &Dependencies{
		Orchestrator: orch,
		Store:        store,
		Logger:       logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}
