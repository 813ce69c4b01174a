package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
)

// loadProjectConfig loads coperacha.toml from projectRoot.
// A missing file yields an empty config and an empty source.
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, string, error) {
	// Load .env files first for variable expansion
	for _, envFile := range []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	} {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}

	cfg := &config.ProjectConfig{}
	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, "", nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	cfg.Registry.Address = os.ExpandEnv(cfg.Registry.Address)
	for name, addr := range cfg.Accounts {
		cfg.Accounts[name] = os.ExpandEnv(addr)
	}
	for i, ref := range cfg.Payouts.Reject {
		cfg.Payouts.Reject[i] = os.ExpandEnv(ref)
	}

	return cfg, path, nil
}
