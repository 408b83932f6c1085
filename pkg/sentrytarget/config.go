package sentrytarget

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the adapter configuration.
// Embed it in an application config for env parsing with caarlos0/env,
// or load it from YAML with LoadConfig.
type Config struct {
	// ClientOptions are passed through to the Sentry client.
	// Keys are matched case-insensitively, ignoring "_" and "-",
	// so "server_name" and "serverName" are equivalent.
	ClientOptions map[string]any `yaml:"client_options"`
	// Context toggles the diagnostic context dump in event extras. Default: true.
	Context              *bool    `env:"SENTRY_CONTEXT" yaml:"context"`
	DSN                  string   `env:"SENTRY_DSN" yaml:"dsn"`
	Environment          string   `env:"SENTRY_ENVIRONMENT" yaml:"environment"`
	Release              string   `env:"SENTRY_RELEASE" yaml:"release"`
	DisabledIntegrations []string `env:"SENTRY_DISABLED_INTEGRATIONS" yaml:"disabled_integrations"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ContextEnabled reports whether the context dump is attached to events.
func (c Config) ContextEnabled() bool {
	return c.Context == nil || *c.Context
}
