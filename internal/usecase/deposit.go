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

// DepositParams contains parameters for a deposit
type DepositParams struct {
	Vault  common.Address
	Amount *big.Int
}

// DepositResult contains the vault after the deposit
type DepositResult struct {
	Vault     *vault.Info
	Depositor common.Address
	Amount    *big.Int
	Logs      []domain.EventLog
}

// Deposit is the use case for funding a vault. Any address may deposit.
type Deposit struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	resolver *VaultResolver
	log      *slog.Logger
}

// NewDeposit creates a new Deposit use case
func NewDeposit(cfg *config.RuntimeConfig, ledger *Ledger, resolver *VaultResolver, log *slog.Logger) *Deposit {
	return &Deposit{
		config:   cfg,
		ledger:   ledger,
		resolver: resolver,
		log:      log.With("component", "Deposit"),
	}
}

// Run executes the deposit use case
func (uc *Deposit) Run(ctx context.Context, params DepositParams) (*DepositResult, error) {
	from, err := sender(uc.config)
	if err != nil {
		return nil, err
	}

	result := &DepositResult{Depositor: from, Amount: params.Amount}
	result.Logs, err = uc.ledger.Update(ctx, func(reg *vault.Registry) error {
		v, err := uc.resolver.Resolve(ctx, reg, params.Vault)
		if err != nil {
			return err
		}
		uc.log.Debug("depositing", "vault", v.Address().Hex(), "caller", from.Hex(), "amount", params.Amount)
		if err := v.Deposit(ctx, from, params.Amount); err != nil {
			return err
		}
		result.Vault = v.Info()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
