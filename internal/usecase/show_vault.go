package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// ShowVaultParams contains parameters for showing a vault
type ShowVaultParams struct {
	Vault common.Address
}

// ShowVaultResult contains a vault summary from the caller's point of view
type ShowVaultResult struct {
	Vault    *vault.Info
	Caller   common.Address
	IsMember bool
	// Pending lists the open proposals
	Pending []*vault.ProposalInfo
}

// ShowVault is the use case for showing a vault
type ShowVault struct {
	config   *config.RuntimeConfig
	ledger   *Ledger
	resolver *VaultResolver
}

// NewShowVault creates a new ShowVault use case
func NewShowVault(cfg *config.RuntimeConfig, ledger *Ledger, resolver *VaultResolver) *ShowVault {
	return &ShowVault{
		config:   cfg,
		ledger:   ledger,
		resolver: resolver,
	}
}

// Run executes the show vault use case
func (uc *ShowVault) Run(ctx context.Context, params ShowVaultParams) (*ShowVaultResult, error) {
	result := &ShowVaultResult{Caller: uc.config.From}
	err := uc.ledger.View(ctx, func(reg *vault.Registry) error {
		v, err := uc.resolver.Resolve(ctx, reg, params.Vault)
		if err != nil {
			return err
		}
		result.Vault = v.Info()
		result.IsMember = v.IsMember(uc.config.From)
		for _, p := range v.Proposals() {
			if p.Status == domain.ProposalStatusPending {
				result.Pending = append(result.Pending, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
