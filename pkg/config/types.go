package config

// Config represents the persistent gridscope configuration stored as
// config.toml in the .gridscope/ directory. The TOML layout uses
// sections for logical grouping.
type Config struct {
	Version  int            `toml:"version"`
	LLM      LLMConfig      `toml:"llm"`
	Log      LogConfig      `toml:"log"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

// LLMConfig holds completion service settings. The Gemini API key is
// never stored here; it is read from the environment by the client.
type LLMConfig struct {
	Model string `toml:"model,omitempty"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	JSON bool `toml:"json,omitempty"`
}

// PipelineConfig holds pipeline behavior settings.
type PipelineConfig struct {
	// Approval selects the escalation approval source for the CLI:
	// "prompt" asks interactively, "defer" returns the offer outcome.
	Approval string `toml:"approval,omitempty"`
}
