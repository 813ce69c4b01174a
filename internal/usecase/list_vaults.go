package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// ListVaultsParams contains parameters for listing vaults
type ListVaultsParams struct {
	// All lists every vault in the registry instead of one member's vaults
	All bool
	// Member overrides the configured sender
	Member common.Address
}

// ListVaultsResult contains the listed vaults
type ListVaultsResult struct {
	Vaults []*vault.Info
	// Member is zero when all vaults were listed
	Member common.Address
	// Total is the number of vaults in the registry
	Total int
}

// ListVaults is the use case for listing vaults
type ListVaults struct {
	config *config.RuntimeConfig
	ledger *Ledger
}

// NewListVaults creates a new ListVaults use case
func NewListVaults(cfg *config.RuntimeConfig, ledger *Ledger) *ListVaults {
	return &ListVaults{
		config: cfg,
		ledger: ledger,
	}
}

// Run executes the list vaults use case
func (uc *ListVaults) Run(ctx context.Context, params ListVaultsParams) (*ListVaultsResult, error) {
	member := params.Member
	if member == (common.Address{}) && !params.All {
		member = uc.config.From
	}

	result := &ListVaultsResult{Member: member}
	err := uc.ledger.View(ctx, func(reg *vault.Registry) error {
		handles := reg.AllVaults()
		if member != (common.Address{}) {
			handles = reg.UserVaults(member)
		}

		result.Total = reg.TotalVaults()
		result.Vaults = make([]*vault.Info, 0, len(handles))
		for _, h := range handles {
			info, err := reg.VaultInfo(h)
			if err != nil {
				return err
			}
			result.Vaults = append(result.Vaults, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
