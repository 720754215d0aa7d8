package internal

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Providers == nil {
		t.Error("expected providers map to be initialized")
	}
	if len(cfg.Providers) != 0 {
		t.Errorf("expected 0 providers, got %d", len(cfg.Providers))
	}
}

func TestConfigSaveAndLoad(t *testing.T) {
	vault := Vault{Dir: filepath.Join(t.TempDir(), ".companion")}

	cfg := DefaultConfig()
	cfg.Providers["openai"] = ProviderConfig{
		APIKey:     "sk-test",
		Model:      "text-embedding-3-large",
		Dimensions: 3072,
	}

	if err := SaveConfig(vault, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(vault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	p, ok := loaded.Providers["openai"]
	if !ok {
		t.Fatal("expected provider 'openai' to exist")
	}
	if p.APIKey != "sk-test" {
		t.Errorf("api key = %q, want %q", p.APIKey, "sk-test")
	}
	if p.Dimensions != 3072 {
		t.Errorf("dimensions = %d, want 3072", p.Dimensions)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	vault := Vault{Dir: t.TempDir()}

	cfg, err := LoadConfig(vault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Providers == nil {
		t.Error("expected default config with initialized providers map")
	}
}

func TestNewGatewayFromConfigNone(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	gw := NewGatewayFromConfig(DefaultConfig())
	if gw.Active() {
		t.Error("expected inactive gateway with no keys configured")
	}
	if gw.ModelID() != ModelNone {
		t.Errorf("model id = %q, want %q", gw.ModelID(), ModelNone)
	}
}

func TestNewGatewayFromConfigPriority(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := DefaultConfig()
	cfg.Providers["gemini"] = ProviderConfig{APIKey: "g-key"}

	if got := NewGatewayFromConfig(cfg).ModelID(); got != "gemini:768" {
		t.Errorf("model id = %q, want gemini:768", got)
	}

	// A configured openai key outranks gemini: first configured wins.
	cfg.Providers["openai"] = ProviderConfig{APIKey: "sk-key"}
	if got := NewGatewayFromConfig(cfg).ModelID(); got != "openai:1536" {
		t.Errorf("model id = %q, want openai:1536", got)
	}
}

func TestNewGatewayFromConfigEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "env-key")

	gw := NewGatewayFromConfig(DefaultConfig())
	if gw.ModelID() != "gemini:768" {
		t.Errorf("model id = %q, want gemini:768", gw.ModelID())
	}
}

func TestVaultPaths(t *testing.T) {
	vault := Vault{Dir: "/tmp/vault"}

	if got := vault.LogPath(); got != filepath.Join("/tmp/vault", LogFilename) {
		t.Errorf("log path = %q", got)
	}
	if got := vault.CachePath(); got != filepath.Join("/tmp/vault", CacheFilename) {
		t.Errorf("cache path = %q", got)
	}
	if got := vault.ConfigPath(); got != filepath.Join("/tmp/vault", ConfigFilename) {
		t.Errorf("config path = %q", got)
	}
}

func TestResolveVault(t *testing.T) {
	if got := ResolveVault("/explicit").Dir; got != "/explicit" {
		t.Errorf("explicit dir = %q", got)
	}

	t.Setenv("COMPANION_HOME", "/from-env")
	if got := ResolveVault("").Dir; got != "/from-env" {
		t.Errorf("env dir = %q", got)
	}
}
