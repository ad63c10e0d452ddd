package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataFile        string                    `yaml:"data_file" mapstructure:"data_file"`
	DefaultProvider string                    `yaml:"default_provider" mapstructure:"default_provider"`
	DefaultModel    string                    `yaml:"default_model" mapstructure:"default_model"`
	Providers       map[string]ProviderConfig `yaml:"providers" mapstructure:"providers"`
	MaxTokens       int                       `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxRetries      int                       `yaml:"max_retries" mapstructure:"max_retries"`
	Timeout         time.Duration             `yaml:"timeout" mapstructure:"timeout"`
	LogLevel        string                    `yaml:"log_level" mapstructure:"log_level"`
	Theme           string                    `yaml:"theme" mapstructure:"theme"`
}

type ProviderConfig struct {
	Type    string `yaml:"type" mapstructure:"type"`
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Model   string `yaml:"model,omitempty" mapstructure:"model"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		DataFile:        filepath.Join("data", "destinations.json"),
		DefaultProvider: "openai",
		DefaultModel:    "gpt-3.5-turbo",
		MaxTokens:       1000,
		MaxRetries:      0,
		LogLevel:        "warn",
		Theme:           "auto",
		Providers: map[string]ProviderConfig{
			"openai":    {Type: "openai", BaseURL: "https://api.openai.com/v1", APIKey: "$OPENAI_API_KEY"},
			"ollama":    {Type: "openai", BaseURL: "http://localhost:11434/v1"},
			"anthropic": {Type: "anthropic", APIKey: "$ANTHROPIC_API_KEY"},
			"google":    {Type: "google", APIKey: "$GEMINI_API_KEY"},
		},
	}
}

// Dir is the per-user config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "itinerary")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "itinerary")
}

// Path is where `config init` writes the config file.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads .env, then config.yaml from the working directory or the user
// config directory, then ITINERARY_* environment variables.
func Load() (*Config, error) {
	return load(viper.New(), ".", Dir())
}

func load(v *viper.Viper, searchPaths ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("ITINERARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"data_file", "default_provider", "default_model", "max_tokens", "max_retries", "timeout", "log_level", "theme"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	for name, p := range cfg.Providers {
		p.APIKey = expandEnv(p.APIKey)
		p.BaseURL = expandEnv(p.BaseURL)
		cfg.Providers[name] = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ProviderFor(name string) (ProviderConfig, bool) {
	p, ok := c.Providers[name]
	return p, ok
}

// HasKey reports whether the provider has a usable credential. A key still
// holding an unexpanded $VAR counts as missing.
func (p ProviderConfig) HasKey() bool {
	return p.APIKey != "" && !strings.HasPrefix(p.APIKey, "$")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("config: data_file is required")
	}
	if c.DefaultProvider == "" {
		return fmt.Errorf("config: default_provider is required")
	}
	if _, ok := c.Providers[c.DefaultProvider]; !ok {
		return fmt.Errorf("config: default_provider %q not found in providers", c.DefaultProvider)
	}
	for name, p := range c.Providers {
		validTypes := map[string]bool{"openai": true, "anthropic": true, "google": true}
		if !validTypes[p.Type] {
			return fmt.Errorf("config: provider %q has invalid type %q (must be openai, anthropic, or google)", name, p.Type)
		}
		if p.Type == "openai" && p.BaseURL == "" {
			return fmt.Errorf("config: provider %q (type openai) requires base_url", name)
		}
	}
	if c.MaxTokens < 1 {
		c.MaxTokens = 1000
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative")
	}
	return nil
}

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
