package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
)

// EventsRenderer renders the event history
type EventsRenderer struct {
	out  io.Writer
	book *config.AddressBook
}

// NewEventsRenderer creates a new events renderer
func NewEventsRenderer(out io.Writer, book *config.AddressBook) *EventsRenderer {
	return &EventsRenderer{out: out, book: book}
}

// Render renders the logs oldest first
func (r *EventsRenderer) Render(logs []domain.EventLog) error {
	if len(logs) == 0 {
		fmt.Fprintln(r.out, "No events found")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"SEQ", "EMITTER", "EVENT", "DETAILS"})
	for _, l := range logs {
		t.AppendRow(table.Row{
			fmt.Sprintf("%d.%d", l.Sequence, l.Index),
			shortAddress(r.book, l.Emitter),
			labelStyle.Sprint(l.Event.ContractEventName()),
			r.details(l.Event),
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderLogs lists the events an operation emitted, one per line
func (r *EventsRenderer) RenderLogs(logs []domain.EventLog) {
	for _, l := range logs {
		fmt.Fprintf(r.out, "  %s %s %s\n",
			faintStyle.Sprintf("#%d.%d", l.Sequence, l.Index),
			labelStyle.Sprint(l.Event.ContractEventName()),
			r.details(l.Event))
	}
}

func (r *EventsRenderer) details(event domain.ParsedEvent) string {
	switch e := event.(type) {
	case *domain.VaultCreatedEvent:
		return fmt.Sprintf("%s %q with %d members", shortAddress(r.book, e.Vault), e.Name, len(e.Members))
	case *domain.DepositMadeEvent:
		return fmt.Sprintf("%s from %s", formatEther(e.Amount), shortAddress(r.book, e.Depositor))
	case *domain.ProposalCreatedEvent:
		return fmt.Sprintf("#%d %s by %s", e.ProposalID, formatType(e.ProposalType), shortAddress(r.book, e.Proposer))
	case *domain.VoteCastedEvent:
		side := executedStyle.Sprint("for")
		if !e.InFavor {
			side = rejectedStyle.Sprint("against")
		}
		return fmt.Sprintf("#%d %s %s", e.ProposalID, shortAddress(r.book, e.Voter), side)
	case *domain.ProposalExecutedEvent:
		return "#" + strconv.FormatUint(e.ProposalID, 10)
	case *domain.ProposalRejectedEvent:
		return "#" + strconv.FormatUint(e.ProposalID, 10)
	case *domain.WithdrawalExecutedEvent:
		return fmt.Sprintf("%s to %s", formatEther(e.Amount), shortAddress(r.book, e.Recipient))
	case *domain.MemberAddedEvent:
		return shortAddress(r.book, e.NewMember)
	default:
		return event.String()
	}
}

var _ Renderer[[]domain.EventLog] = (*EventsRenderer)(nil)
