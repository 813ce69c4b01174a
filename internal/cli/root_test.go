package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coperacha/coperacha-cli/internal/adapters/boltstore"
)

const testProject = `
[accounts]
alice = "0x00000000000000000000000000000000000a11ce"
bob   = "0x0000000000000000000000000000000000000b0b"
carol = "0x00000000000000000000000000000000000ca201"
shop  = "0x0000000000000000000000000000000000005407"
wall  = "0x000000000000000000000000000000000000a11a"

[payouts]
reject = ["wall"]
`

// newProject creates a project directory and makes it the working directory
func newProject(t *testing.T) string {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coperacha.toml"), []byte(testProject), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// run executes one command line against a fresh command tree
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--non-interactive"))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestRootCmd_Commands(t *testing.T) {
	root := NewRootCmd()

	expected := map[string]string{
		"create":    "vault",
		"list":      "vault",
		"show":      "vault",
		"deposit":   "vault",
		"propose":   "proposal",
		"vote":      "proposal",
		"execute":   "proposal",
		"proposal":  "proposal",
		"proposals": "proposal",
		"history":   "management",
		"payouts":   "management",
		"apply":     "management",
		"config":    "management",
		"version":   "",
	}

	for name, group := range expected {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
			assert.Equal(t, group, cmd.GroupID)
		})
	}

	propose, _, err := root.Find([]string{"propose", "add-member"})
	require.NoError(t, err)
	assert.Equal(t, "add-member", propose.Name())

	for _, flag := range []string{"from", "vault", "data-dir", "debug", "non-interactive", "json"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestSkipsApp(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{name: "version", expected: true},
		{name: "help", expected: true},
		{name: "completion", expected: true},
		{name: cobra.ShellCompRequestCmd, expected: true},
		{name: "create", expected: false},
		{name: "config", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, skipsApp(&cobra.Command{Use: tt.name}))
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out := mustRun(t, "version")
	assert.Contains(t, out, "coperacha version dev")
}

func TestCLI_WithdrawalFlow(t *testing.T) {
	dir := newProject(t)

	out := mustRun(t, "create", "Familia", "-m", "alice", "-m", "bob", "-m", "carol", "--from", "alice")
	assert.Contains(t, out, "Created vault Familia")
	assert.Contains(t, out, "Quorum:    2 of 3 members")

	out = mustRun(t, "deposit", "2", "--from", "carol")
	assert.Contains(t, out, "carol deposited 2 ETH into Familia")

	out = mustRun(t, "propose", "withdraw", "shop", "0.5", "-d", "groceries", "--from", "alice")
	assert.Contains(t, out, "Submitted proposal #0 (Withdrawal) to Familia")
	assert.Contains(t, out, "Amount:      0.5 ETH")

	out = mustRun(t, "proposals", "--status", "pending", "--from", "alice")
	assert.Contains(t, out, "groceries")
	assert.Contains(t, out, "Total: 1 (1 Pending)")

	out = mustRun(t, "vote", "0", "--for", "--from", "bob")
	assert.Contains(t, out, "Proposal #0 executed")
	assert.Contains(t, out, "Sent 0.5 ETH to shop")

	out = mustRun(t, "payouts", "--json")
	var payouts []struct {
		Label string `json:"label"`
		Total struct {
			Wei string `json:"wei"`
		} `json:"total"`
		Count uint64 `json:"count"`
	}
	require.NoError(t, sonic.UnmarshalString(out, &payouts))
	require.Len(t, payouts, 1)
	assert.Equal(t, "shop", payouts[0].Label)
	assert.Equal(t, "500000000000000000", payouts[0].Total.Wei)

	out = mustRun(t, "history", "--all", "--json")
	var events []struct {
		Event string `json:"event"`
	}
	require.NoError(t, sonic.UnmarshalString(out, &events))
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Event)
	}
	assert.Equal(t, []string{
		"VaultCreated",
		"DepositMade",
		"ProposalCreated",
		"VoteCasted",
		"WithdrawalExecuted",
		"ProposalExecuted",
	}, names)

	assert.FileExists(t, filepath.Join(dir, ".coperacha", boltstore.FileName))
}

func TestCLI_FailedPayoutCanBeRetried(t *testing.T) {
	newProject(t)

	mustRun(t, "create", "Muro", "-m", "alice", "-m", "bob", "--from", "alice")
	mustRun(t, "deposit", "1", "--from", "alice")
	mustRun(t, "propose", "withdraw", "wall", "1", "--from", "alice")

	out, err := run(t, "vote", "0", "--for", "--from", "bob")
	require.Error(t, err)
	assert.Contains(t, out, "Vote recorded on proposal #0")
	assert.Contains(t, out, "coperacha execute 0")

	_, err = run(t, "execute", "0", "--from", "alice")
	assert.Error(t, err)

	out = mustRun(t, "proposal", "0", "--from", "alice")
	assert.Contains(t, out, "Status:      Pending")
	assert.Contains(t, out, "Votes:       2 for, 0 against, 2 needed")
}

func TestCLI_Errors(t *testing.T) {
	newProject(t)
	mustRun(t, "create", "Familia", "-m", "alice", "-m", "bob", "--from", "alice")

	tests := []struct {
		name string
		args []string
	}{
		{name: "create with one member", args: []string{"create", "Solo", "-m", "alice", "--from", "alice"}},
		{name: "unknown account", args: []string{"deposit", "1", "--from", "mallory"}},
		{name: "bad amount", args: []string{"deposit", "lots", "--from", "alice"}},
		{name: "vote without side", args: []string{"vote", "0", "--from", "bob"}},
		{name: "vote both sides", args: []string{"vote", "0", "--for", "--against", "--from", "bob"}},
		{name: "unknown proposal", args: []string{"vote", "7", "--for", "--from", "bob"}},
		{name: "non member proposes", args: []string{"propose", "add-member", "carol", "--from", "shop", "--vault", "0x0000000000000000000000000000000000000001"}},
		{name: "bad status filter", args: []string{"proposals", "--status", "maybe", "--from", "alice"}},
		{name: "bad vault address", args: []string{"show", "Familia"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCLI_Config(t *testing.T) {
	newProject(t)

	out := mustRun(t, "config")
	assert.Contains(t, out, "No .coperacha/config.local.json file found")
	assert.Contains(t, out, "alice")

	out = mustRun(t, "config", "set", "from", "alice")
	assert.Contains(t, out, "Set from to: alice")

	// the stored sender is picked up without --from
	out = mustRun(t, "create", "Familia", "-m", "alice", "-m", "bob")
	assert.Contains(t, out, "Created vault Familia")
	out = mustRun(t, "list")
	assert.Contains(t, out, "1 of 1 vaults include alice")

	out = mustRun(t, "config", "remove", "from")
	assert.Contains(t, out, "Removed from")

	_, err := run(t, "deposit", "1")
	assert.Error(t, err)
}

func TestCLI_Apply(t *testing.T) {
	dir := newProject(t)
	script := filepath.Join(dir, "family.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`
vault: Familia
steps:
  - op: create
    from: alice
    name: Familia
    members: [alice, bob, carol]
  - op: deposit
    from: carol
    amount: "3"
  - op: add-member
    from: alice
    member: shop
    description: the shop joins
  - op: vote
    from: bob
    vote: for
`), 0644))

	out := mustRun(t, "apply", script)
	assert.Contains(t, out, "4 steps applied")
	assert.Contains(t, out, "MemberAdded")

	out = mustRun(t, "list", "--member", "shop")
	assert.Contains(t, out, "Familia")
}
