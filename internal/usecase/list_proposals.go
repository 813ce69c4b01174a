package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// ListProposalsParams contains parameters for listing proposals
type ListProposalsParams struct {
	Vault common.Address
	// Status filters by status when set
	Status *domain.ProposalStatus
	Type   *domain.ProposalType
}

// ListProposalsResult contains the listed proposals in creation order
type ListProposalsResult struct {
	Vault     *vault.Info
	Proposals []*vault.ProposalInfo
	Summary   ProposalSummary
}

// ProposalSummary counts proposals by status over the whole vault
type ProposalSummary struct {
	Total    int
	ByStatus map[domain.ProposalStatus]int
}

// ListProposals is the use case for listing a vault's proposals
type ListProposals struct {
	ledger   *Ledger
	resolver *VaultResolver
}

// NewListProposals creates a new ListProposals use case
func NewListProposals(ledger *Ledger, resolver *VaultResolver) *ListProposals {
	return &ListProposals{
		ledger:   ledger,
		resolver: resolver,
	}
}

// Run executes the list proposals use case
func (uc *ListProposals) Run(ctx context.Context, params ListProposalsParams) (*ListProposalsResult, error) {
	result := &ListProposalsResult{
		Summary: ProposalSummary{ByStatus: make(map[domain.ProposalStatus]int)},
	}
	err := uc.ledger.View(ctx, func(reg *vault.Registry) error {
		v, err := uc.resolver.Resolve(ctx, reg, params.Vault)
		if err != nil {
			return err
		}
		result.Vault = v.Info()

		for _, p := range v.Proposals() {
			result.Summary.Total++
			result.Summary.ByStatus[p.Status]++

			if params.Status != nil && p.Status != *params.Status {
				continue
			}
			if params.Type != nil && p.Type != *params.Type {
				continue
			}
			result.Proposals = append(result.Proposals, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
