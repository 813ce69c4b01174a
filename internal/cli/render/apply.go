package render

import (
	"fmt"
	"io"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// ApplyRenderer renders the outcome of applying a script
type ApplyRenderer struct {
	out    io.Writer
	events *EventsRenderer
}

// NewApplyRenderer creates a new apply renderer
func NewApplyRenderer(out io.Writer, book *config.AddressBook) *ApplyRenderer {
	return &ApplyRenderer{out: out, events: NewEventsRenderer(out, book)}
}

// Render renders each step with the events it emitted
func (r *ApplyRenderer) Render(result *usecase.ApplyScriptResult) error {
	for _, step := range result.Steps {
		label := fmt.Sprintf("[%d] %s", step.Index, step.Op)
		if step.ProposalID != nil {
			label += fmt.Sprintf(" #%d", *step.ProposalID)
		}
		if step.Err != nil {
			fmt.Fprintln(r.out, rejectedStyle.Sprintf("✗ %s: %v", label, step.Err))
			continue
		}
		fmt.Fprintln(r.out, executedStyle.Sprint("✓ ")+label)
		r.events.RenderLogs(step.Logs)
	}

	fmt.Fprintln(r.out)
	applied := len(result.Steps) - result.Failed
	summary := fmt.Sprintf("%d steps applied, %d events emitted", applied, result.TotalLogs())
	if result.Failed > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s, %d failed", summary, result.Failed)))
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(summary))
	return nil
}

var _ Renderer[*usecase.ApplyScriptResult] = (*ApplyRenderer)(nil)
