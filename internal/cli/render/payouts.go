package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// PayoutsRenderer renders the funds credited to withdrawal recipients
type PayoutsRenderer struct {
	out io.Writer
}

// NewPayoutsRenderer creates a new payouts renderer
func NewPayoutsRenderer(out io.Writer) *PayoutsRenderer {
	return &PayoutsRenderer{out: out}
}

// Render renders one row per recipient
func (r *PayoutsRenderer) Render(entries []usecase.PayoutEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No payouts yet")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"RECIPIENT", "ACCOUNT", "RECEIVED", "WITHDRAWALS"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			addressStyle.Sprint(e.Recipient.Hex()),
			labelStyle.Sprint(e.Label),
			formatEther(e.Total),
			e.Count,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

var _ Renderer[[]usecase.PayoutEntry] = (*PayoutsRenderer)(nil)
