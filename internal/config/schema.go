package config

// InterviewConfig represents the platform configuration loaded from YAML.
type InterviewConfig struct {
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Sandbox   SandboxConfig   `yaml:"sandbox"`
	Templates TemplatesConfig `yaml:"templates"`
}

// DefaultsConfig holds interview parameters applied when a request omits them.
type DefaultsConfig struct {
	DurationMinutes int    `yaml:"duration_minutes"`
	Depth           string `yaml:"depth"`
	InterviewType   string `yaml:"interview_type"`
	CompanyName     string `yaml:"company_name"`
}

// SandboxConfig points at the code execution sandbox.
type SandboxConfig struct {
	Provider string `yaml:"provider"`
	APIURL   string `yaml:"api_url"`
	APIHost  string `yaml:"api_host"`
}

// TemplatesConfig locates the role question template library.
type TemplatesConfig struct {
	Path string `yaml:"path"`
}
