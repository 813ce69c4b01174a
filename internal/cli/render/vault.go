package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// VaultRenderer renders vault lists and vault details
type VaultRenderer struct {
	out  io.Writer
	book *config.AddressBook
}

// NewVaultRenderer creates a new vault renderer
func NewVaultRenderer(out io.Writer, book *config.AddressBook) *VaultRenderer {
	return &VaultRenderer{out: out, book: book}
}

// RenderList renders the vaults as a table
func (r *VaultRenderer) RenderList(result *usecase.ListVaultsResult) error {
	if len(result.Vaults) == 0 {
		if result.Member != (common.Address{}) {
			fmt.Fprintf(r.out, "No vaults found for %s\n", shortAddress(r.book, result.Member))
		} else {
			fmt.Fprintln(r.out, "No vaults found")
		}
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"NAME", "ADDRESS", "MEMBERS", "BALANCE", "AVAILABLE", "PROPOSALS"})
	for _, v := range result.Vaults {
		t.AppendRow(table.Row{
			nameStyle.Sprint(v.Name),
			addressStyle.Sprint(v.Address.Hex()),
			len(v.Members),
			formatEther(v.Balance),
			formatEther(v.Available),
			v.ProposalCount,
		})
	}
	fmt.Fprintln(r.out, t.Render())

	fmt.Fprintln(r.out)
	if result.Member != (common.Address{}) {
		fmt.Fprintf(r.out, "%d of %d vaults include %s\n", len(result.Vaults), result.Total, shortAddress(r.book, result.Member))
	} else {
		fmt.Fprintf(r.out, "Total vaults: %d\n", result.Total)
	}
	return nil
}

// RenderVault renders the details of one vault
func (r *VaultRenderer) RenderVault(result *usecase.ShowVaultResult) error {
	r.renderInfo(result.Vault)

	if result.Caller != (common.Address{}) {
		membership := "not a member"
		if result.IsMember {
			membership = "member"
		}
		fmt.Fprintf(r.out, "\nYou (%s): %s\n", shortAddress(r.book, result.Caller), membership)
	}

	fmt.Fprintln(r.out)
	if len(result.Pending) == 0 {
		fmt.Fprintln(r.out, faintStyle.Sprint("No pending proposals"))
		return nil
	}
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("Pending proposals (%d)", len(result.Pending)))
	fmt.Fprintln(r.out, renderProposalTable(r.book, result.Pending))
	return nil
}

// RenderCreated renders a freshly created vault
func (r *VaultRenderer) RenderCreated(result *usecase.CreateVaultResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Created vault %s", result.Vault.Name)))
	fmt.Fprintln(r.out)
	r.renderInfo(result.Vault)
	return nil
}

// RenderDeposit renders a completed deposit
func (r *VaultRenderer) RenderDeposit(result *usecase.DepositResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deposited %s into %s",
		shortAddress(r.book, result.Depositor),
		formatEther(result.Amount),
		nameStyle.Sprint(result.Vault.Name))))
	fmt.Fprintf(r.out, "Balance:   %s\n", formatEther(result.Vault.Balance))
	fmt.Fprintf(r.out, "Available: %s\n", formatEther(result.Vault.Available))
	return nil
}

func (r *VaultRenderer) renderInfo(v *vault.Info) {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("Vault: %s", v.Name))
	fmt.Fprintf(r.out, "Address:   %s\n", addressStyle.Sprint(v.Address.Hex()))
	fmt.Fprintf(r.out, "Balance:   %s\n", formatEther(v.Balance))
	fmt.Fprintf(r.out, "Reserved:  %s\n", formatEther(v.Reserved))
	fmt.Fprintf(r.out, "Available: %s\n", formatEther(v.Available))
	fmt.Fprintf(r.out, "Quorum:    %d of %d members\n", v.RequiredVotes, len(v.Members))
	fmt.Fprintf(r.out, "Proposals: %d\n", v.ProposalCount)
	fmt.Fprintln(r.out, "Members:")
	for _, m := range v.Members {
		fmt.Fprintf(r.out, "  - %s\n", formatAddress(r.book, m))
	}
}
