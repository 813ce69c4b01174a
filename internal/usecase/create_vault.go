package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// CreateVaultParams contains parameters for creating a vault
type CreateVaultParams struct {
	Name    string
	Members []common.Address
}

// CreateVaultResult contains the created vault and its logs
type CreateVaultResult struct {
	Vault *vault.Info
	Logs  []domain.EventLog
}

// CreateVault is the use case for creating a vault through the registry
type CreateVault struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	selector MemberSelector
	log      *slog.Logger
}

// NewCreateVault creates a new CreateVault use case
func NewCreateVault(cfg *config.RuntimeConfig, ledger *Ledger, selector MemberSelector, log *slog.Logger) *CreateVault {
	return &CreateVault{
		config:   cfg,
		ledger:   ledger,
		selector: selector,
		log:      log.With("component", "CreateVault"),
	}
}

// Run executes the create vault use case
func (uc *CreateVault) Run(ctx context.Context, params CreateVaultParams) (*CreateVaultResult, error) {
	members := params.Members
	if len(members) == 0 {
		var err error
		if members, err = uc.pickMembers(ctx); err != nil {
			return nil, err
		}
	}

	var info *vault.Info
	logs, err := uc.ledger.Update(ctx, func(reg *vault.Registry) error {
		v, err := reg.CreateVault(ctx, params.Name, members)
		if err != nil {
			return err
		}
		info = v.Info()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("vault created", "vault", info.Address.Hex(), "name", info.Name, "members", len(info.Members))
	return &CreateVaultResult{Vault: info, Logs: logs}, nil
}

func (uc *CreateVault) pickMembers(ctx context.Context) ([]common.Address, error) {
	accounts := uc.config.Accounts.Accounts()
	if uc.config.NonInteractive || uc.selector == nil || len(accounts) == 0 {
		return nil, fmt.Errorf("%w: pass at least %d --member flags", domain.ErrInvalidMembers, vault.MinMembers)
	}
	return uc.selector.SelectMembers(ctx, accounts, "Select vault members")
}
