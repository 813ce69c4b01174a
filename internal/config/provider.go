package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
)

const (
	// DataDirName is the per-project state directory
	DataDirName = ".coperacha"
	// ProjectFileName marks the project root
	ProjectFileName = "coperacha.toml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "COPERACHA"
)

// DefaultRegistryAddress is used when coperacha.toml does not name a registry
var DefaultRegistryAddress = common.HexToAddress("0x5c90927EAb2fD25a07Bdc02E577EeffA4453b7a0")

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = filepath.Join(projectRoot, DataDirName)
	} else if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(projectRoot, dataDir)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        dataDir,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Registry:       DefaultRegistryAddress,
	}

	project, source, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}
	cfg.ConfigSource = source

	cfg.Accounts, err = config.NewAddressBook(project.Accounts)
	if err != nil {
		return nil, fmt.Errorf("invalid [accounts] in %s: %w", ProjectFileName, err)
	}

	if project.Registry.Address != "" {
		if !common.IsHexAddress(project.Registry.Address) {
			return nil, fmt.Errorf("invalid [registry] address %q", project.Registry.Address)
		}
		cfg.Registry = common.HexToAddress(project.Registry.Address)
	}

	for _, ref := range project.Payouts.Reject {
		addr, err := cfg.Accounts.Resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid [payouts] reject entry: %w", err)
		}
		cfg.RejectingRecipients = append(cfg.RejectingRecipients, addr)
	}

	if from := v.GetString("from"); from != "" {
		cfg.From, err = cfg.Accounts.Resolve(from)
		if err != nil {
			return nil, fmt.Errorf("invalid sender: %w", err)
		}
	}

	if vault := v.GetString("vault"); vault != "" {
		if !common.IsHexAddress(vault) {
			return nil, fmt.Errorf("invalid vault address %q", vault)
		}
		cfg.Vault = common.HexToAddress(vault)
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory looking for coperacha.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Local config file written by `coperacha config set`
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("timeout", "1m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			// Unchanged flags must not shadow config file values
			if !f.Changed {
				return
			}
			if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// flagKey maps a flag name onto its viper key
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
