package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/coperacha/coperacha-cli/internal/cli/render"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/pkg/units"
)

// NewCreateCmd creates the create command
func NewCreateCmd() *cobra.Command {
	var members []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new shared vault",
		Long: `Create a vault owned by the given members. A vault needs at least two
distinct members. Without --member flags the members are picked
interactively from the [accounts] section of coperacha.toml.

Examples:
  coperacha create Familia --member alice --member bob --member carol
  coperacha create Viaje --member 0x1234... --member bob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			addrs, err := parseAccounts(app.Config.Accounts, members)
			if err != nil {
				return err
			}

			result, err := app.CreateVault.Run(cmd.Context(), usecase.CreateVaultParams{
				Name:    args[0],
				Members: addrs,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
					"vault":  render.NewVaultJSON(result.Vault),
					"events": render.NewEventsJSON(result.Logs),
				})
			}
			return render.NewVaultRenderer(cmd.OutOrStdout(), app.Config.Accounts).RenderCreated(result)
		},
	}

	cmd.Flags().StringArrayVarP(&members, "member", "m", nil, "Vault member (alias or address), repeatable")

	return cmd
}

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var all bool
	var member string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vaults",
		Long: `List the vaults the sending account belongs to, or every vault with --all.

Examples:
  coperacha list --from alice
  coperacha list --member bob
  coperacha list --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListVaultsParams{All: all}
			if member != "" {
				if params.Member, err = parseAccount(app.Config.Accounts, member); err != nil {
					return err
				}
			}

			result, err := app.ListVaults.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				vaults := make([]*render.VaultJSON, 0, len(result.Vaults))
				for _, v := range result.Vaults {
					vaults = append(vaults, render.NewVaultJSON(v))
				}
				return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
					"vaults": vaults,
					"total":  result.Total,
				})
			}
			return render.NewVaultRenderer(cmd.OutOrStdout(), app.Config.Accounts).RenderList(result)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every vault in the registry")
	cmd.Flags().StringVar(&member, "member", "", "List the vaults of this account instead of --from")

	return cmd
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [vault]",
		Short: "Show vault balance, members and pending proposals",
		Long: `Show a vault. The vault is taken from the argument, then --vault, then the
configured default; when the sending account has a single vault it is used.

Examples:
  coperacha show
  coperacha show 0x1234...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var handle common.Address
			if len(args) == 1 {
				if handle, err = parseVaultAddress(args[0]); err != nil {
					return err
				}
			}

			result, err := app.ShowVault.Run(cmd.Context(), usecase.ShowVaultParams{Vault: handle})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
					"vault":    render.NewVaultJSON(result.Vault),
					"isMember": result.IsMember,
					"pending":  render.NewProposalsJSON(result.Pending),
				})
			}
			return render.NewVaultRenderer(cmd.OutOrStdout(), app.Config.Accounts).RenderVault(result)
		},
	}
}

// NewDepositCmd creates the deposit command
func NewDepositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit funds into a vault",
		Long: `Deposit funds into a vault. Anyone may deposit, membership is not required.
Amounts are in ether unless suffixed with gwei or wei.

Examples:
  coperacha deposit 1.5 --from alice
  coperacha deposit 250gwei --vault 0x1234...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			amount, err := units.ParseAmount(args[0])
			if err != nil {
				return err
			}

			result, err := app.Deposit.Run(cmd.Context(), usecase.DepositParams{Amount: amount})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
					"vault":  render.NewVaultJSON(result.Vault),
					"events": render.NewEventsJSON(result.Logs),
				})
			}
			return render.NewVaultRenderer(cmd.OutOrStdout(), app.Config.Accounts).RenderDeposit(result)
		},
	}
}
