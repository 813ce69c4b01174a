package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProvider_Defaults(t *testing.T) {
	root := t.TempDir()
	v := viper.New()
	v.Set("project_root", root)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, DataDirName), cfg.DataDir)
	assert.Equal(t, DefaultRegistryAddress, cfg.Registry)
	assert.Empty(t, cfg.ConfigSource)
	assert.Equal(t, common.Address{}, cfg.From)
	assert.Equal(t, common.Address{}, cfg.Vault)
	assert.Empty(t, cfg.RejectingRecipients)
}

func TestProvider_ProjectFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SHOP_ADDRESS", "0x00000000000000000000000000000000000005a1")
	writeFile(t, filepath.Join(root, ProjectFileName), `
[registry]
address = "0x00000000000000000000000000000000000000aa"

[accounts]
alice = "0x0000000000000000000000000000000000000001"
bob = "0x0000000000000000000000000000000000000002"
shop = "${SHOP_ADDRESS}"

[payouts]
reject = ["shop", "0x00000000000000000000000000000000000000ee"]
`)

	v := viper.New()
	v.Set("project_root", root)
	v.Set("from", "alice")
	v.Set("vault", "0x00000000000000000000000000000000000000cc")
	v.Set("data_dir", "state")

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, ProjectFileName), cfg.ConfigSource)
	assert.Equal(t, filepath.Join(root, "state"), cfg.DataDir)
	assert.Equal(t, common.HexToAddress("0xaa"), cfg.Registry)
	assert.Equal(t, common.HexToAddress("0x01"), cfg.From)
	assert.Equal(t, common.HexToAddress("0xcc"), cfg.Vault)
	assert.Equal(t, []common.Address{
		common.HexToAddress("0x05a1"),
		common.HexToAddress("0xee"),
	}, cfg.RejectingRecipients)
	assert.Equal(t, "bob", cfg.Accounts.Label(common.HexToAddress("0x02")))
}

func TestProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		from    string
		vault   string
		errText string
	}{
		{name: "malformed toml", project: "[registry", errText: "failed to parse"},
		{name: "bad registry", project: "[registry]\naddress = \"nope\"", errText: "[registry]"},
		{name: "bad account", project: "[accounts]\nalice = \"0x12\"", errText: "[accounts]"},
		{name: "unknown rejecting alias", project: "[payouts]\nreject = [\"ghost\"]", errText: "[payouts]"},
		{name: "unknown sender", from: "ghost", errText: "invalid sender"},
		{name: "bad vault", vault: "0x1234", errText: "invalid vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.project != "" {
				writeFile(t, filepath.Join(root, ProjectFileName), tt.project)
			}
			v := viper.New()
			v.Set("project_root", root)
			if tt.from != "" {
				v.Set("from", tt.from)
			}
			if tt.vault != "" {
				v.Set("vault", tt.vault)
			}

			_, err := Provider(v)
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestSetupViper_Precedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DataDirName, "config.local.json"),
		`{"from": "0x0000000000000000000000000000000000000001", "vault": "0x00000000000000000000000000000000000000cc"}`)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("from", "", "")
	cmd.Flags().String("vault", "", "")
	cmd.Flags().Bool("non-interactive", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--from", "bob", "--non-interactive"}))

	t.Setenv("COPERACHA_VAULT", "0x00000000000000000000000000000000000000dd")

	v := SetupViper(root, cmd)
	assert.Equal(t, "bob", v.GetString("from"))
	assert.Equal(t, "0x00000000000000000000000000000000000000dd", v.GetString("vault"))
	assert.True(t, v.GetBool("non_interactive"))
	assert.Equal(t, root, v.GetString("project_root"))
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ProjectFileName), "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	found, err := FindProjectRoot()
	require.NoError(t, err)
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedFound, _ := filepath.EvalSymlinks(found)
	assert.Equal(t, resolvedRoot, resolvedFound)
}
