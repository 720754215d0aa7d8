package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderConfig configures one embedding backend. Unset fields fall back to
// the backend's defaults; an unset api_key falls back to the provider's
// environment variable.
type ProviderConfig struct {
	APIKey     string `yaml:"api_key,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	Model      string `yaml:"model,omitempty"`
	Dimensions int    `yaml:"dimensions,omitempty"`
}

type Config struct {
	Providers map[string]ProviderConfig `yaml:"providers,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Providers: make(map[string]ProviderConfig),
	}
}

func LoadConfig(vault Vault) (*Config, error) {
	path := vault.ConfigPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	return &cfg, nil
}

func SaveConfig(vault Vault, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := vault.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(vault.ConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Provider selection is fixed-priority: the first provider with a configured
// key wins, and only one backend is ever active per engine instance. Scores
// from different embedding spaces must never be blended within one retrieval.
var providerPriority = []struct {
	name   string
	envKey string
}{
	{"openai", "OPENAI_API_KEY"},
	{"gemini", "GEMINI_API_KEY"},
}

// NewGatewayFromConfig builds the embedding gateway from the config plus
// environment keys. With no key configured anywhere the gateway is inactive
// and retrieval stays keyword-only.
func NewGatewayFromConfig(cfg *Config) *Gateway {
	for _, p := range providerPriority {
		pc := cfg.Providers[p.name]
		apiKey := pc.APIKey
		if apiKey == "" {
			apiKey = os.Getenv(p.envKey)
		}
		if apiKey == "" {
			continue
		}

		switch p.name {
		case "openai":
			return NewGateway(newOpenAIBackend(apiKey, pc.BaseURL, pc.Model, pc.Dimensions))
		case "gemini":
			return NewGateway(newGeminiBackend(apiKey, pc.BaseURL, pc.Model, pc.Dimensions))
		}
	}
	return NewGateway(nil)
}
