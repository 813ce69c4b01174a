package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// CastVoteParams contains parameters for voting on a proposal
type CastVoteParams struct {
	Vault      common.Address
	ProposalID uint64
	InFavor    bool
}

// CastVote is the use case for voting on a proposal.
// When the vote decides a withdrawal whose transfer fails, the vote stays
// recorded and the returned error satisfies errors.Is(err, domain.ErrTransferFailed);
// the result is returned alongside it.
type CastVote struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	resolver *VaultResolver
	log      *slog.Logger
}

// NewCastVote creates a new CastVote use case
func NewCastVote(cfg *config.RuntimeConfig, ledger *Ledger, resolver *VaultResolver, log *slog.Logger) *CastVote {
	return &CastVote{
		config:   cfg,
		ledger:   ledger,
		resolver: resolver,
		log:      log.With("component", "CastVote"),
	}
}

// Run executes the cast vote use case
func (uc *CastVote) Run(ctx context.Context, params CastVoteParams) (*ProposalResult, error) {
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
		uc.log.Debug("voting", "vault", v.Address().Hex(), "proposal", params.ProposalID,
			"caller", from.Hex(), "inFavor", params.InFavor)

		voteErr := v.Vote(ctx, from, params.ProposalID, params.InFavor)
		if voteErr != nil && !errors.Is(voteErr, domain.ErrTransferFailed) {
			return voteErr
		}
		if err := fillProposalResult(result, v, params.ProposalID); err != nil {
			return err
		}
		return voteErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransferFailed) && result.Proposal != nil {
			return result, err
		}
		return nil, err
	}

	logTerminal(uc.log, result)
	return result, nil
}

// ExecuteProposalParams contains parameters for executing a proposal
type ExecuteProposalParams struct {
	Vault      common.Address
	ProposalID uint64
}

// ExecuteProposal is the use case for re-running the decision of a pending
// proposal, typically a withdrawal whose transfer failed earlier
type ExecuteProposal struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	resolver *VaultResolver
	log      *slog.Logger
}

// NewExecuteProposal creates a new ExecuteProposal use case
func NewExecuteProposal(cfg *config.RuntimeConfig, ledger *Ledger, resolver *VaultResolver, log *slog.Logger) *ExecuteProposal {
	return &ExecuteProposal{
		config:   cfg,
		ledger:   ledger,
		resolver: resolver,
		log:      log.With("component", "ExecuteProposal"),
	}
}

// Run executes the execute proposal use case
func (uc *ExecuteProposal) Run(ctx context.Context, params ExecuteProposalParams) (*ProposalResult, error) {
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
		uc.log.Debug("executing", "vault", v.Address().Hex(), "proposal", params.ProposalID, "caller", from.Hex())

		if err := v.ExecuteProposal(ctx, from, params.ProposalID); err != nil {
			return err
		}
		return fillProposalResult(result, v, params.ProposalID)
	})
	if err != nil {
		return nil, err
	}

	logTerminal(uc.log, result)
	return result, nil
}

func logTerminal(log *slog.Logger, result *ProposalResult) {
	if result.Proposal == nil || !result.Proposal.Status.IsTerminal() {
		return
	}
	log.Info("proposal decided", "vault", result.Vault.Address.Hex(),
		"proposal", result.Proposal.ID, "status", result.Proposal.Status.String())
}
