package config

const (
	// CurrentV is the currently supported config version.
	CurrentV = 0

	defaultModel    = "gemini-2.5-flash"
	defaultApproval = "prompt"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		LLM: LLMConfig{
			Model: defaultModel,
		},
		Log: LogConfig{
			JSON: false,
		},
		Pipeline: PipelineConfig{
			Approval: defaultApproval,
		},
	}
}
