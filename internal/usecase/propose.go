package usecase

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// ProposalResult contains a proposal after a proposal operation
type ProposalResult struct {
	Vault    *vault.Info
	Proposal *vault.ProposalInfo
	Logs     []domain.EventLog
}

// ProposeWithdrawalParams contains parameters for proposing a withdrawal
type ProposeWithdrawalParams struct {
	Vault       common.Address
	Description string
	Recipient   common.Address
	Amount      *big.Int
}

// ProposeWithdrawal is the use case for proposing a withdrawal
type ProposeWithdrawal struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	resolver *VaultResolver
	log      *slog.Logger
}

// NewProposeWithdrawal creates a new ProposeWithdrawal use case
func NewProposeWithdrawal(cfg *config.RuntimeConfig, ledger *Ledger, resolver *VaultResolver, log *slog.Logger) *ProposeWithdrawal {
	return &ProposeWithdrawal{
		config:   cfg,
		ledger:   ledger,
		resolver: resolver,
		log:      log.With("component", "ProposeWithdrawal"),
	}
}

// Run executes the propose withdrawal use case
func (uc *ProposeWithdrawal) Run(ctx context.Context, params ProposeWithdrawalParams) (*ProposalResult, error) {
	from, err := sender(uc.config)
	if err != nil {
		return nil, err
	}

	result := &ProposalResult{}
	result.Logs, err = uc.ledger.Update(ctx, func(reg *vault.Registry) error {
		v, err := uc.resolver.Resolve(ctx, reg, params.Vault)
		if err != nil {
			return err
		}
		uc.log.Debug("proposing withdrawal", "vault", v.Address().Hex(), "caller", from.Hex(),
			"recipient", params.Recipient.Hex(), "amount", params.Amount)

		id, err := v.ProposeWithdrawal(ctx, from, params.Description, params.Recipient, params.Amount)
		if err != nil {
			return err
		}
		return fillProposalResult(result, v, id)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProposeAddMemberParams contains parameters for proposing a new member
type ProposeAddMemberParams struct {
	Vault       common.Address
	Description string
	NewMember   common.Address
}

// ProposeAddMember is the use case for proposing a new member
type ProposeAddMember struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	resolver *VaultResolver
	log      *slog.Logger
}

// NewProposeAddMember creates a new ProposeAddMember use case
func NewProposeAddMember(cfg *config.RuntimeConfig, ledger *Ledger, resolver *VaultResolver, log *slog.Logger) *ProposeAddMember {
	return &ProposeAddMember{
		config:   cfg,
		ledger:   ledger,
		resolver: resolver,
		log:      log.With("component", "ProposeAddMember"),
	}
}

// Run executes the propose add member use case
func (uc *ProposeAddMember) Run(ctx context.Context, params ProposeAddMemberParams) (*ProposalResult, error) {
	from, err := sender(uc.config)
	if err != nil {
		return nil, err
	}

	result := &ProposalResult{}
	result.Logs, err = uc.ledger.Update(ctx, func(reg *vault.Registry) error {
		v, err := uc.resolver.Resolve(ctx, reg, params.Vault)
		if err != nil {
			return err
		}
		uc.log.Debug("proposing member", "vault", v.Address().Hex(), "caller", from.Hex(), "member", params.NewMember.Hex())

		id, err := v.ProposeAddMember(ctx, from, params.Description, params.NewMember)
		if err != nil {
			return err
		}
		return fillProposalResult(result, v, id)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func fillProposalResult(result *ProposalResult, v *vault.Vault, id uint64) error {
	p, err := v.Proposal(id)
	if err != nil {
		return err
	}
	result.Vault = v.Info()
	result.Proposal = p
	return nil
}
