package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "❌ No .coperacha/config.local.json file found\n")
		fmt.Fprintf(r.out, "⚠️  Without config, commands require explicit --from and --vault flags\n")
	} else {
		fmt.Fprintln(r.out, "📋 Current config:")
		fmt.Fprintf(r.out, "From:  %s\n", valueOrUnset(result.Config.From))
		fmt.Fprintf(r.out, "Vault: %s\n", valueOrUnset(result.Config.Vault))
	}

	if len(result.Accounts) > 0 {
		fmt.Fprintln(r.out, "\n👥 Accounts:")
		for _, account := range result.Accounts {
			fmt.Fprintf(r.out, "  %-10s %s\n", account.Name, account.Address.Hex())
		}
	}

	if result.ConfigSource != "" {
		fmt.Fprintf(r.out, "\n📦 Config source: %s\n", getRelativePath(result.ConfigSource))
	}
	if result.Exists {
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyFrom:
		fmt.Fprintf(r.out, "✅ Removed from (will be required as --from flag)\n")
	case config.ConfigKeyVault:
		fmt.Fprintf(r.out, "✅ Removed default vault\n")
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
