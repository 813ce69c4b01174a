package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// ProposalRenderer renders proposals and the results of voting on them
type ProposalRenderer struct {
	out  io.Writer
	book *config.AddressBook
}

// NewProposalRenderer creates a new proposal renderer
func NewProposalRenderer(out io.Writer, book *config.AddressBook) *ProposalRenderer {
	return &ProposalRenderer{out: out, book: book}
}

// RenderList renders the proposals of a vault with a status summary
func (r *ProposalRenderer) RenderList(result *usecase.ListProposalsResult) error {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("Proposals of %s", result.Vault.Name))
	if len(result.Proposals) == 0 {
		fmt.Fprintln(r.out, "No proposals found")
		return nil
	}

	fmt.Fprintln(r.out, renderProposalTable(r.book, result.Proposals))
	fmt.Fprintln(r.out)

	var parts []string
	for _, status := range []domain.ProposalStatus{
		domain.ProposalStatusPending,
		domain.ProposalStatusExecuted,
		domain.ProposalStatusRejected,
	} {
		if n := result.Summary.ByStatus[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, formatStatus(status)))
		}
	}
	fmt.Fprintf(r.out, "Total: %d (%s)\n", result.Summary.Total, strings.Join(parts, ", "))
	return nil
}

// RenderProposal renders the details of one proposal
func (r *ProposalRenderer) RenderProposal(result *usecase.ShowProposalResult) error {
	r.renderDetail(result.Vault, result.Proposal)

	if result.Caller != (common.Address{}) && result.Proposal.Status == domain.ProposalStatusPending {
		fmt.Fprintln(r.out)
		if result.CallerVoted {
			fmt.Fprintln(r.out, faintStyle.Sprintf("%s already voted", shortAddress(r.book, result.Caller)))
		} else {
			fmt.Fprintf(r.out, "Vote with: coperacha vote %d --for | --against\n", result.Proposal.ID)
		}
	}
	return nil
}

// RenderProposed renders a newly submitted proposal
func (r *ProposalRenderer) RenderProposed(result *usecase.ProposalResult) error {
	p := result.Proposal
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Submitted proposal #%d (%s) to %s",
		p.ID, formatType(p.Type), result.Vault.Name)))
	fmt.Fprintln(r.out)
	r.renderDetail(result.Vault, p)
	return nil
}

// RenderVote renders the state of a proposal after a vote or an execution retry
func (r *ProposalRenderer) RenderVote(result *usecase.ProposalResult) error {
	p := result.Proposal
	switch p.Status {
	case domain.ProposalStatusExecuted:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Proposal #%d executed", p.ID)))
		switch p.Type {
		case domain.ProposalTypeWithdrawal:
			fmt.Fprintf(r.out, "Sent %s to %s\n", formatEther(p.Amount), formatAddress(r.book, p.Recipient))
		case domain.ProposalTypeAddMember:
			fmt.Fprintf(r.out, "Added member %s\n", formatAddress(r.book, p.NewMember))
		}
	case domain.ProposalStatusRejected:
		fmt.Fprintln(r.out, rejectedStyle.Sprintf("✗ Proposal #%d rejected", p.ID))
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Vote recorded on proposal #%d", p.ID)))
		fmt.Fprintf(r.out, "Votes: %d for, %d against, %d needed\n",
			len(p.VotesFor), len(p.VotesAgainst), p.RequiredVotes)
	}
	fmt.Fprintf(r.out, "Vault %s available: %s\n", result.Vault.Name, formatEther(result.Vault.Available))
	return nil
}

func (r *ProposalRenderer) renderDetail(v *vault.Info, p *vault.ProposalInfo) {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("Proposal #%d in %s", p.ID, v.Name))
	fmt.Fprintf(r.out, "Type:        %s\n", formatType(p.Type))
	fmt.Fprintf(r.out, "Status:      %s\n", formatStatus(p.Status))
	fmt.Fprintf(r.out, "Proposer:    %s\n", formatAddress(r.book, p.Proposer))
	if p.Description != "" {
		fmt.Fprintf(r.out, "Description: %s\n", p.Description)
	}
	switch p.Type {
	case domain.ProposalTypeWithdrawal:
		fmt.Fprintf(r.out, "Recipient:   %s\n", formatAddress(r.book, p.Recipient))
		fmt.Fprintf(r.out, "Amount:      %s\n", formatEther(p.Amount))
	case domain.ProposalTypeAddMember:
		fmt.Fprintf(r.out, "New member:  %s\n", formatAddress(r.book, p.NewMember))
	}
	fmt.Fprintf(r.out, "Votes:       %d for, %d against, %d needed\n",
		len(p.VotesFor), len(p.VotesAgainst), p.RequiredVotes)
	for _, voter := range p.VotesFor {
		fmt.Fprintf(r.out, "  %s %s\n", executedStyle.Sprint("✓"), formatAddress(r.book, voter))
	}
	for _, voter := range p.VotesAgainst {
		fmt.Fprintf(r.out, "  %s %s\n", rejectedStyle.Sprint("✗"), formatAddress(r.book, voter))
	}
}

// renderProposalTable renders proposals one per row
func renderProposalTable(book *config.AddressBook, proposals []*vault.ProposalInfo) string {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "TYPE", "STATUS", "TARGET", "VOTES", "DESCRIPTION"})
	for _, p := range proposals {
		var target string
		switch p.Type {
		case domain.ProposalTypeWithdrawal:
			target = fmt.Sprintf("%s → %s", formatEther(p.Amount), shortAddress(book, p.Recipient))
		case domain.ProposalTypeAddMember:
			target = "+ " + shortAddress(book, p.NewMember)
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("#%d", p.ID),
			formatType(p.Type),
			formatStatus(p.Status),
			target,
			fmt.Sprintf("%d/%d (%d against)", len(p.VotesFor), p.RequiredVotes, len(p.VotesAgainst)),
			p.Description,
		})
	}
	return t.Render()
}
