package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/coperacha/coperacha-cli/internal/cli/render"
	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/pkg/units"
)

// NewProposeCmd creates the propose command group
func NewProposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Submit a proposal to a vault",
		Long: `Submit a proposal to a vault. The proposer's vote counts in favor
right away, so in a two-member vault one more vote decides it.`,
	}

	cmd.AddCommand(newProposeWithdrawCmd())
	cmd.AddCommand(newProposeAddMemberCmd())

	return cmd
}

func newProposeWithdrawCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:     "withdraw <recipient> <amount>",
		Aliases: []string{"withdrawal"},
		Short:   "Propose sending funds out of the vault",
		Long: `Propose a withdrawal. The amount is reserved until the proposal is
decided, so it cannot be promised twice.

Examples:
  coperacha propose withdraw shop 0.3 -d "groceries" --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			recipient, err := parseAccount(app.Config.Accounts, args[0])
			if err != nil {
				return err
			}
			amount, err := units.ParseAmount(args[1])
			if err != nil {
				return err
			}

			result, err := app.ProposeWithdrawal.Run(cmd.Context(), usecase.ProposeWithdrawalParams{
				Description: description,
				Recipient:   recipient,
				Amount:      amount,
			})
			if err != nil {
				return err
			}
			return renderProposed(cmd, app.Config, result)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What the funds are for")

	return cmd
}

func newProposeAddMemberCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add-member <account>",
		Short: "Propose adding a member to the vault",
		Long: `Propose a new member. Once added, the member counts toward the quorum
of every proposal that is still pending.

Examples:
  coperacha propose add-member dave -d "joins the trip" --from bob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			member, err := parseAccount(app.Config.Accounts, args[0])
			if err != nil {
				return err
			}

			result, err := app.ProposeAddMember.Run(cmd.Context(), usecase.ProposeAddMemberParams{
				Description: description,
				NewMember:   member,
			})
			if err != nil {
				return err
			}
			return renderProposed(cmd, app.Config, result)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Why the member should join")

	return cmd
}

// NewVoteCmd creates the vote command
func NewVoteCmd() *cobra.Command {
	var inFavor, against bool

	cmd := &cobra.Command{
		Use:   "vote <proposal-id>",
		Short: "Vote on a pending proposal",
		Long: `Vote for or against a pending proposal. The vote that gives a side a
majority decides the proposal: an approved withdrawal is paid out and an
approved member is added immediately.

Examples:
  coperacha vote 0 --for --from bob
  coperacha vote 2 --against --from carol`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			result, err := app.CastVote.Run(cmd.Context(), usecase.CastVoteParams{
				ProposalID: id,
				InFavor:    inFavor,
			})
			if err != nil && result == nil {
				return err
			}
			if renderErr := renderVote(cmd, app.Config, result); renderErr != nil {
				return renderErr
			}
			if errors.Is(err, domain.ErrTransferFailed) {
				cmd.PrintErrln(render.FormatWarning("the vote was recorded but the payout failed; retry with `coperacha execute " + args[0] + "`"))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&inFavor, "for", false, "Vote in favor")
	cmd.Flags().BoolVar(&against, "against", false, "Vote against")
	cmd.MarkFlagsMutuallyExclusive("for", "against")
	cmd.MarkFlagsOneRequired("for", "against")

	return cmd
}

// NewExecuteCmd creates the execute command
func NewExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute <proposal-id>",
		Short: "Retry a proposal that reached quorum",
		Long: `Retry the decision of a pending proposal that already has a majority in
favor, typically a withdrawal whose payout failed when the deciding vote
was cast.

Examples:
  coperacha execute 3 --from alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			result, err := app.ExecuteProposal.Run(cmd.Context(), usecase.ExecuteProposalParams{ProposalID: id})
			if err != nil {
				return err
			}
			return renderVote(cmd, app.Config, result)
		},
	}
}

// NewProposalCmd creates the proposal command
func NewProposalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proposal [proposal-id]",
		Short: "Show a proposal",
		Long: `Show a proposal with its votes. Without an id a pending proposal is
picked, interactively when there is more than one.

Examples:
  coperacha proposal 0
  coperacha proposal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var params usecase.ShowProposalParams
			if len(args) == 1 {
				id, err := parseProposalID(args[0])
				if err != nil {
					return err
				}
				params.ProposalID = &id
			}

			result, err := app.ShowProposal.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
					"vault":    result.Vault.Address,
					"proposal": render.NewProposalJSON(result.Proposal),
				})
			}
			return render.NewProposalRenderer(cmd.OutOrStdout(), app.Config.Accounts).RenderProposal(result)
		},
	}
}

// NewProposalsCmd creates the proposals command
func NewProposalsCmd() *cobra.Command {
	var status, proposalType string

	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "List the proposals of a vault",
		Long: `List the proposals of a vault, oldest first.

Examples:
  coperacha proposals
  coperacha proposals --status pending
  coperacha proposals --type withdrawal --vault 0x1234...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var params usecase.ListProposalsParams
			if status != "" {
				s, err := domain.ParseProposalStatus(status)
				if err != nil {
					return err
				}
				params.Status = &s
			}
			if proposalType != "" {
				t, err := domain.ParseProposalType(proposalType)
				if err != nil {
					return err
				}
				params.Type = &t
			}

			result, err := app.ListProposals.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
					"vault":     result.Vault.Address,
					"proposals": render.NewProposalsJSON(result.Proposals),
					"total":     result.Summary.Total,
				})
			}
			return render.NewProposalRenderer(cmd.OutOrStdout(), app.Config.Accounts).RenderList(result)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, executed, rejected)")
	cmd.Flags().StringVar(&proposalType, "type", "", "Filter by type (withdrawal, add-member)")

	return cmd
}

func renderProposed(cmd *cobra.Command, cfg *config.RuntimeConfig, result *usecase.ProposalResult) error {
	if cfg.JSON {
		return renderProposalResultJSON(cmd, result)
	}
	return render.NewProposalRenderer(cmd.OutOrStdout(), cfg.Accounts).RenderProposed(result)
}

func renderVote(cmd *cobra.Command, cfg *config.RuntimeConfig, result *usecase.ProposalResult) error {
	if cfg.JSON {
		return renderProposalResultJSON(cmd, result)
	}
	return render.NewProposalRenderer(cmd.OutOrStdout(), cfg.Accounts).RenderVote(result)
}

func renderProposalResultJSON(cmd *cobra.Command, result *usecase.ProposalResult) error {
	return render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
		"vault":    render.NewVaultJSON(result.Vault),
		"proposal": render.NewProposalJSON(result.Proposal),
		"events":   render.NewEventsJSON(result.Logs),
	})
}
