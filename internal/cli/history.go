package cli

import (
	"github.com/spf13/cobra"

	"github.com/coperacha/coperacha-cli/internal/cli/render"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/pkg/units"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var all bool
	var event string
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"events"},
		Short:   "Show the event log",
		Long: `Show the events emitted by the registry and the vaults, oldest first.
By default only the events of --vault (or the configured vault) are shown.

Examples:
  coperacha history --vault 0x1234...
  coperacha history --all --event VoteCasted
  coperacha history --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListEvents.Run(cmd.Context(), usecase.ListEventsParams{
				All:   all,
				Event: event,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), render.NewEventsJSON(result.Events))
			}
			return render.NewEventsRenderer(cmd.OutOrStdout(), app.Config.Accounts).Render(result.Events)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show events of every vault and the registry")
	cmd.Flags().StringVarP(&event, "event", "e", "", "Only show events with this name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the most recent events")

	return cmd
}

// NewPayoutsCmd creates the payouts command
func NewPayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payouts",
		Short: "Show the funds paid out to withdrawal recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			entries, err := app.ListPayouts.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				type payoutJSON struct {
					Recipient string            `json:"recipient"`
					Label     string            `json:"label,omitempty"`
					Total     render.AmountJSON `json:"total"`
					Count     uint64            `json:"count"`
				}
				out := make([]payoutJSON, 0, len(entries))
				for _, e := range entries {
					out = append(out, payoutJSON{
						Recipient: e.Recipient.Hex(),
						Label:     e.Label,
						Total:     render.AmountJSON{Wei: e.Total.String(), Ether: units.FormatEther(e.Total)},
						Count:     e.Count,
					})
				}
				return render.RenderJSON(cmd.OutOrStdout(), out)
			}
			return render.NewPayoutsRenderer(cmd.OutOrStdout()).Render(entries)
		},
	}
}
