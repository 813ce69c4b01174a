package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// VaultResolver picks the vault an operation targets
type VaultResolver struct {
	config   *config.RuntimeConfig
	selector VaultSelector
}

// NewVaultResolver creates a new VaultResolver
func NewVaultResolver(cfg *config.RuntimeConfig, selector VaultSelector) *VaultResolver {
	return &VaultResolver{
		config:   cfg,
		selector: selector,
	}
}

// Resolve returns the vault named by handle. Without a handle it falls back
// to the configured default vault, then to the caller's only vault, then to
// an interactive pick among the caller's vaults.
func (r *VaultResolver) Resolve(ctx context.Context, reg *vault.Registry, handle common.Address) (*vault.Vault, error) {
	if handle == (common.Address{}) {
		handle = r.config.Vault
	}
	if handle != (common.Address{}) {
		return reg.Vault(handle)
	}

	candidates := reg.AllVaults()
	if r.config.From != (common.Address{}) {
		candidates = reg.UserVaults(r.config.From)
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("no vault given and none found: pass --vault or create one")
	case 1:
		return reg.Vault(candidates[0])
	}

	if r.config.NonInteractive || r.selector == nil {
		return nil, fmt.Errorf("%d vaults match: pass --vault to choose one", len(candidates))
	}

	infos := make([]*vault.Info, 0, len(candidates))
	for _, h := range candidates {
		info, err := reg.VaultInfo(h)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	selected, err := r.selector.SelectVault(ctx, infos, "Select a vault")
	if err != nil {
		return nil, err
	}
	return reg.Vault(selected.Address)
}
