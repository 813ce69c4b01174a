package vault

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Registry is the append-only directory of vaults. Vault handles are
// derived from the registry address and a creation nonce, the same way
// a factory contract's children are addressed.
type Registry struct {
	mu sync.RWMutex

	address  common.Address
	nonce    uint64
	sequence uint64
	vaults   []*Vault
	byHandle map[common.Address]*Vault
	byMember map[common.Address][]common.Address

	transferer Transferer
	emitter    Emitter
}

// NewRegistry creates an empty registry
func NewRegistry(address common.Address, transferer Transferer, emitter Emitter) *Registry {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	return &Registry{
		address:    address,
		byHandle:   make(map[common.Address]*Vault),
		byMember:   make(map[common.Address][]common.Address),
		transferer: transferer,
		emitter:    emitter,
	}
}

// Address returns the registry address
func (r *Registry) Address() common.Address {
	return r.address
}

// CreateVault validates the member list and registers a new vault
func (r *Registry) CreateVault(ctx context.Context, name string, members []common.Address) (*Vault, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if err := ValidateMembers(members); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	handle := crypto.CreateAddress(r.address, r.nonce)
	r.nonce++

	v := newVault(handle, name, members, r.transferer, r.emitter)
	r.register(v)

	r.sequence++
	r.emitter.Emit(domain.EventLog{
		Emitter:  r.address,
		Sequence: r.sequence,
		Index:    0,
		TxHash:   OperationHash(r.address, r.sequence),
		Event: &domain.VaultCreatedEvent{
			Vault:   handle,
			Name:    name,
			Members: slices.Clone(members),
		},
	})
	return v, nil
}

// register indexes v. Callers hold r.mu.
func (r *Registry) register(v *Vault) {
	r.vaults = append(r.vaults, v)
	r.byHandle[v.address] = v
	for _, m := range v.members {
		r.byMember[m] = append(r.byMember[m], v.address)
	}
	v.listener = r
}

func (r *Registry) memberAdded(vault, member common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.byMember[member], vault) {
		r.byMember[member] = append(r.byMember[member], vault)
	}
}

// Vault looks up a vault by handle
func (r *Registry) Vault(handle common.Address) (*Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byHandle[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrVaultNotFound, handle.Hex())
	}
	return v, nil
}

// UserVaults returns the handles of every vault addr is a member of, in creation order
func (r *Registry) UserVaults(addr common.Address) []common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byMember[addr])
}

// AllVaults returns every vault handle in creation order
func (r *Registry) AllVaults() []common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handles := make([]common.Address, len(r.vaults))
	for i, v := range r.vaults {
		handles[i] = v.address
	}
	return handles
}

// TotalVaults returns the number of vaults created
func (r *Registry) TotalVaults() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vaults)
}

// VaultInfo returns (name, members, balance, proposalCount) and the reservation view
func (r *Registry) VaultInfo(handle common.Address) (*Info, error) {
	v, err := r.Vault(handle)
	if err != nil {
		return nil, err
	}
	return v.Info(), nil
}
