package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadInterviewConfig() (*InterviewConfig, error) {

	path := os.Getenv("INTERVIEW_CONFIG_PATH")
	if path == "" {
		path = "configs/interview.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg InterviewConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *InterviewConfig) {
	if cfg.Defaults.DurationMinutes == 0 {
		cfg.Defaults.DurationMinutes = 30
	}
	if cfg.Defaults.Depth == "" {
		cfg.Defaults.Depth = "MEDIUM"
	}
	if cfg.Defaults.InterviewType == "" {
		cfg.Defaults.InterviewType = "MIXED"
	}
	if cfg.Sandbox.Provider == "" {
		cfg.Sandbox.Provider = "judge0"
	}
	if cfg.Templates.Path == "" {
		cfg.Templates.Path = "configs/templates.yaml"
	}
}

func (c *InterviewConfig) Validate() error {
	if c.Defaults.DurationMinutes < 10 || c.Defaults.DurationMinutes > 120 {
		return fmt.Errorf("default duration must be between 10 and 120 minutes, got %d", c.Defaults.DurationMinutes)
	}
	switch c.Defaults.Depth {
	case "LOW", "MEDIUM", "HIGH":
	default:
		return fmt.Errorf("unknown depth: %s", c.Defaults.Depth)
	}
	return nil
}
