package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coperacha/coperacha-cli/internal/adapters/progress"
	"github.com/coperacha/coperacha-cli/internal/app"
	"github.com/coperacha/coperacha-cli/internal/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coperacha",
		Short: "Shared vaults governed by majority vote",
		Long: `Coperacha keeps pooled funds in shared vaults. Any member can deposit,
and every withdrawal or new member has to be approved by a majority
of the vault's members before it takes effect.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			var sink usecase.ProgressSink = usecase.NopProgress{}
			if !v.GetBool("json") && !v.GetBool("non_interactive") {
				sink = progress.NewSpinnerSink()
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("from", "", "Account acting in this command (alias from [accounts] or address)")
	rootCmd.PersistentFlags().String("vault", "", "Vault address to operate on")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the ledger and event log (default .coperacha)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "vault",
		Title: "Vault Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "proposal",
		Title: "Proposal Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{
		NewCreateCmd(),
		NewListCmd(),
		NewShowCmd(),
		NewDepositCmd(),
	} {
		c.GroupID = "vault"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{
		NewProposeCmd(),
		NewVoteCmd(),
		NewExecuteCmd(),
		NewProposalCmd(),
		NewProposalsCmd(),
	} {
		c.GroupID = "proposal"
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{
		NewHistoryCmd(),
		NewPayoutsCmd(),
		NewApplyCmd(),
		NewConfigCmd(),
	} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipsApp reports whether cmd runs without loading the project
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
