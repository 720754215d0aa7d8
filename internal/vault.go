package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultVaultDir = ".companion"

	LogFilename    = "memories.md"
	CacheFilename  = "memories.index.json"
	ConfigFilename = "config.yaml"
)

// Vault is the directory holding one user's memory files: the append-only
// log (source of truth), the vector cache side-file (rebuildable), and the
// provider configuration.
type Vault struct {
	Dir string
}

// ResolveVault picks the vault directory: an explicit path wins, then
// $COMPANION_HOME, then ~/.companion.
func ResolveVault(explicit string) Vault {
	if explicit != "" {
		return Vault{Dir: explicit}
	}
	if env := os.Getenv("COMPANION_HOME"); env != "" {
		return Vault{Dir: env}
	}
	home, _ := os.UserHomeDir()
	return Vault{Dir: filepath.Join(home, defaultVaultDir)}
}

func (v Vault) LogPath() string {
	return filepath.Join(v.Dir, LogFilename)
}

func (v Vault) CachePath() string {
	return filepath.Join(v.Dir, CacheFilename)
}

func (v Vault) ConfigPath() string {
	return filepath.Join(v.Dir, ConfigFilename)
}

// EnsureDir creates the vault directory lazily; recall never needs it to
// exist, save does.
func (v Vault) EnsureDir() error {
	if err := os.MkdirAll(v.Dir, 0755); err != nil {
		return fmt.Errorf("create vault directory: %w", err)
	}
	return nil
}
