package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/coperacha/coperacha-cli/internal/cli/render"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// NewApplyCmd creates the apply command
func NewApplyCmd() *cobra.Command {
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "apply <script.yaml>",
		Short: "Apply a YAML script of vault operations",
		Long: `Apply a sequence of operations from a YAML file, or from stdin with "-".
Every step is applied and saved on its own, so a failing step leaves the
steps before it in place.

Example script:
  vault: Familia
  steps:
    - op: create
      from: alice
      name: Familia
      members: [alice, bob, carol]
    - op: deposit
      from: alice
      amount: "2"
    - op: withdraw
      from: alice
      recipient: shop
      amount: "0.5"
      description: groceries
    - op: vote
      from: bob
      vote: for`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			script, err := usecase.ParseScript(in)
			if err != nil {
				return err
			}

			result, err := app.ApplyScript.Run(cmd.Context(), usecase.ApplyScriptParams{
				Script:          script,
				ContinueOnError: continueOnError,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				type stepJSON struct {
					Index      int                 `json:"index"`
					Op         string              `json:"op"`
					Vault      string              `json:"vault,omitempty"`
					ProposalID *uint64             `json:"proposalId,omitempty"`
					Events     []*render.EventJSON `json:"events"`
					Error      string              `json:"error,omitempty"`
				}
				steps := make([]stepJSON, 0, len(result.Steps))
				for _, s := range result.Steps {
					step := stepJSON{
						Index:      s.Index,
						Op:         s.Op,
						ProposalID: s.ProposalID,
						Events:     render.NewEventsJSON(s.Logs),
					}
					if s.Vault != (common.Address{}) {
						step.Vault = s.Vault.Hex()
					}
					if s.Err != nil {
						step.Error = s.Err.Error()
					}
					steps = append(steps, step)
				}
				if err := render.RenderJSON(cmd.OutOrStdout(), map[string]interface{}{
					"steps":  steps,
					"failed": result.Failed,
				}); err != nil {
					return err
				}
			} else if err := render.NewApplyRenderer(cmd.OutOrStdout(), app.Config.Accounts).Render(result); err != nil {
				return err
			}

			if result.Failed > 0 {
				return fmt.Errorf("%d of %d steps failed", result.Failed, len(script.Steps))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep applying steps after one fails")

	return cmd
}
