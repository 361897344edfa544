package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/gridscope/gridscope/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper. It sets
// defaults from NewDefaultConfig(), reads the config.toml file (if
// found via dotdir resolution), and binds environment variables with
// the GRIDSCOPE_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (GRIDSCOPE_LLM_MODEL, GRIDSCOPE_LOG_JSON, ...)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("GRIDSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper materializes a Config from a configured viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		LLM: LLMConfig{
			Model: v.GetString("llm.model"),
		},
		Log: LogConfig{
			JSON: v.GetBool("log.json"),
		},
		Pipeline: PipelineConfig{
			Approval: v.GetString("pipeline.approval"),
		},
	}
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source
// of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("pipeline.approval", d.Pipeline.Approval)
}
