package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// ShowProposalParams contains parameters for showing a proposal
type ShowProposalParams struct {
	Vault common.Address
	// ProposalID is nil to pick a pending proposal interactively
	ProposalID *uint64
}

// ShowProposalResult contains a proposal and the caller's relation to it
type ShowProposalResult struct {
	Vault       *vault.Info
	Proposal    *vault.ProposalInfo
	Caller      common.Address
	CallerVoted bool
}

// ShowProposal is the use case for showing a single proposal
type ShowProposal struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	resolver *VaultResolver
	selector ProposalSelector
}

// NewShowProposal creates a new ShowProposal use case
func NewShowProposal(cfg *config.RuntimeConfig, ledger *Ledger, resolver *VaultResolver, selector ProposalSelector) *ShowProposal {
	return &ShowProposal{
		config:   cfg,
		ledger:   ledger,
		resolver: resolver,
		selector: selector,
	}
}

// Run executes the show proposal use case
func (uc *ShowProposal) Run(ctx context.Context, params ShowProposalParams) (*ShowProposalResult, error) {
	result := &ShowProposalResult{Caller: uc.config.From}
	err := uc.ledger.View(ctx, func(reg *vault.Registry) error {
		v, err := uc.resolver.Resolve(ctx, reg, params.Vault)
		if err != nil {
			return err
		}
		result.Vault = v.Info()

		if params.ProposalID == nil {
			result.Proposal, err = uc.pick(ctx, v.Proposals())
		} else {
			result.Proposal, err = v.Proposal(*params.ProposalID)
		}
		if err != nil {
			return err
		}

		if uc.config.From != (common.Address{}) {
			result.CallerVoted, err = v.HasVoted(result.Proposal.ID, uc.config.From)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *ShowProposal) pick(ctx context.Context, proposals []*vault.ProposalInfo) (*vault.ProposalInfo, error) {
	var pending []*vault.ProposalInfo
	for _, p := range proposals {
		if p.Status == domain.ProposalStatusPending {
			pending = append(pending, p)
		}
	}
	switch {
	case len(pending) == 0:
		return nil, fmt.Errorf("no pending proposals: pass a proposal id")
	case len(pending) == 1:
		return pending[0], nil
	case uc.config.NonInteractive || uc.selector == nil:
		return nil, fmt.Errorf("%d pending proposals: pass a proposal id", len(pending))
	}
	return uc.selector.SelectProposal(ctx, pending, "Select a proposal")
}
