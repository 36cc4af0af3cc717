package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interview.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadInterviewConfig(t *testing.T) {
	path := writeConfigFile(t, `
defaults:
  duration_minutes: 45
  depth: HIGH
  interview_type: TECHNICAL
  company_name: Acme
sandbox:
  api_url: https://judge0.example.com
  api_host: judge0.example.com
templates:
  path: /etc/interviewer/templates.yaml
`)
	t.Setenv("INTERVIEW_CONFIG_PATH", path)

	cfg, err := LoadInterviewConfig()
	if err != nil {
		t.Fatalf("LoadInterviewConfig() error = %v", err)
	}

	if cfg.Defaults.DurationMinutes != 45 {
		t.Errorf("Expected duration 45, got %d", cfg.Defaults.DurationMinutes)
	}
	if cfg.Defaults.Depth != "HIGH" {
		t.Errorf("Expected depth HIGH, got %s", cfg.Defaults.Depth)
	}
	if cfg.Sandbox.Provider != "judge0" {
		t.Errorf("Expected default sandbox provider judge0, got %s", cfg.Sandbox.Provider)
	}
	if cfg.Templates.Path != "/etc/interviewer/templates.yaml" {
		t.Errorf("Unexpected templates path: %s", cfg.Templates.Path)
	}
}

func TestLoadInterviewConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
sandbox:
  api_url: https://judge0.example.com
`)
	t.Setenv("INTERVIEW_CONFIG_PATH", path)

	cfg, err := LoadInterviewConfig()
	if err != nil {
		t.Fatalf("LoadInterviewConfig() error = %v", err)
	}

	if cfg.Defaults.DurationMinutes != 30 {
		t.Errorf("Expected default duration 30, got %d", cfg.Defaults.DurationMinutes)
	}
	if cfg.Defaults.Depth != "MEDIUM" {
		t.Errorf("Expected default depth MEDIUM, got %s", cfg.Defaults.Depth)
	}
	if cfg.Defaults.InterviewType != "MIXED" {
		t.Errorf("Expected default type MIXED, got %s", cfg.Defaults.InterviewType)
	}
	if cfg.Templates.Path != "configs/templates.yaml" {
		t.Errorf("Expected default templates path, got %s", cfg.Templates.Path)
	}
}

func TestLoadInterviewConfig_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `
defaults:
  duration_minutes: 5
`)
	t.Setenv("INTERVIEW_CONFIG_PATH", path)

	if _, err := LoadInterviewConfig(); err == nil {
		t.Fatal("Expected validation error for out-of-range duration")
	}
}

func TestLoadInterviewConfig_MissingFile(t *testing.T) {
	t.Setenv("INTERVIEW_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := LoadInterviewConfig(); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
