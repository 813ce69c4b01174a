package vault_test

import (
	"context"
	"testing"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/vault"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateVault(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		vault    string
		members  []common.Address
		expected error
	}{
		{name: "valid", vault: "Familia", members: []common.Address{alice, bob}},
		{name: "empty name", vault: "  ", members: []common.Address{alice, bob}, expected: domain.ErrEmptyName},
		{name: "single member", vault: "Solo", members: []common.Address{alice}, expected: domain.ErrInvalidMembers},
		{name: "no members", vault: "Nobody", expected: domain.ErrInvalidMembers},
		{name: "duplicate member", vault: "Dup", members: []common.Address{alice, bob, alice}, expected: domain.ErrInvalidMembers},
		{name: "zero address member", vault: "Zero", members: []common.Address{alice, {}}, expected: domain.ErrZeroAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := vault.NewRegistry(factory, &recordingTransferer{}, nil)
			v, err := reg.CreateVault(ctx, tt.vault, tt.members)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
				assert.Nil(t, v)
				assert.Equal(t, 0, reg.TotalVaults())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.vault, v.Name())
			assert.Equal(t, tt.members, v.Members())
			assert.Equal(t, 0, v.Balance().Sign())
		})
	}
}

func TestRegistry_HandlesAndIndexes(t *testing.T) {
	ctx := context.Background()
	events := &eventRecorder{}
	reg := vault.NewRegistry(factory, &recordingTransferer{}, events)

	family, err := reg.CreateVault(ctx, "Familia", []common.Address{alice, bob, carol})
	require.NoError(t, err)
	trip, err := reg.CreateVault(ctx, "Viaje", []common.Address{bob, dave})
	require.NoError(t, err)

	assert.Equal(t, crypto.CreateAddress(factory, 0), family.Address())
	assert.Equal(t, crypto.CreateAddress(factory, 1), trip.Address())
	assert.Equal(t, 2, reg.TotalVaults())
	assert.Equal(t, []common.Address{family.Address(), trip.Address()}, reg.AllVaults())
	assert.Equal(t, []common.Address{family.Address(), trip.Address()}, reg.UserVaults(bob))
	assert.Equal(t, []common.Address{family.Address()}, reg.UserVaults(alice))
	assert.Empty(t, reg.UserVaults(erin))

	got, err := reg.Vault(trip.Address())
	require.NoError(t, err)
	assert.Same(t, trip, got)

	_, err = reg.Vault(shop)
	assert.ErrorIs(t, err, domain.ErrVaultNotFound)

	info, err := reg.VaultInfo(family.Address())
	require.NoError(t, err)
	assert.Equal(t, "Familia", info.Name)
	assert.Len(t, info.Members, 3)
	assert.Equal(t, uint64(0), info.ProposalCount)

	assert.Equal(t, []string{"VaultCreated", "VaultCreated"}, events.names())
	created, ok := events.logs[1].Event.(*domain.VaultCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, trip.Address(), created.Vault)
	assert.Equal(t, factory, events.logs[1].Emitter)
	assert.Equal(t, uint64(2), events.logs[1].Sequence)
}

func TestRegistry_UserVaultsFollowMembership(t *testing.T) {
	ctx := context.Background()
	reg := vault.NewRegistry(factory, &recordingTransferer{}, nil)
	v, err := reg.CreateVault(ctx, "Familia", []common.Address{alice, bob, carol})
	require.NoError(t, err)

	id, err := v.ProposeAddMember(ctx, alice, "dave", dave)
	require.NoError(t, err)
	assert.Empty(t, reg.UserVaults(dave))

	require.NoError(t, v.Vote(ctx, carol, id, true))
	assert.Equal(t, []common.Address{v.Address()}, reg.UserVaults(dave))
}

func TestRegistry_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := vault.NewRegistry(factory, &recordingTransferer{}, nil)
	v, err := reg.CreateVault(ctx, "Familia", []common.Address{alice, bob, carol, dave})
	require.NoError(t, err)
	require.NoError(t, v.Deposit(ctx, erin, ether(10)))

	pending, err := v.ProposeWithdrawal(ctx, alice, "rent", shop, ether(6))
	require.NoError(t, err)
	require.NoError(t, v.Vote(ctx, bob, pending, true))
	rejected, err := v.ProposeWithdrawal(ctx, bob, "tv", shop, ether(3))
	require.NoError(t, err)
	require.NoError(t, v.Vote(ctx, carol, rejected, false))
	require.NoError(t, v.Vote(ctx, dave, rejected, false))
	added, err := v.ProposeAddMember(ctx, carol, "erin", erin)
	require.NoError(t, err)
	require.NoError(t, v.Vote(ctx, alice, added, true))
	require.NoError(t, v.Vote(ctx, bob, added, true))

	rec := reg.Record()
	restored, err := vault.RestoreRegistry(rec, &recordingTransferer{}, nil)
	require.NoError(t, err)
	assert.Equal(t, rec, restored.Record())

	rv, err := restored.Vault(v.Address())
	require.NoError(t, err)
	assert.Equal(t, v.Info(), rv.Info())
	assert.Equal(t, v.Proposals(), rv.Proposals())
	assert.Equal(t, ether(6), rv.ReservedFunds())
	assert.Equal(t, []common.Address{v.Address()}, restored.UserVaults(erin))

	// the restored registry keeps deriving fresh handles
	next, err := restored.CreateVault(ctx, "Otra", []common.Address{alice, bob})
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(factory, 1), next.Address())

	// the restored vault keeps voting where the original left off
	require.NoError(t, rv.Vote(ctx, carol, pending, true))
	info, _ := rv.Proposal(pending)
	assert.Equal(t, domain.ProposalStatusExecuted, info.Status)
}

func TestRegistry_RestoreRejectsCorruptSnapshots(t *testing.T) {
	ctx := context.Background()
	build := func() *vault.Registry {
		reg := vault.NewRegistry(factory, &recordingTransferer{}, nil)
		v, err := reg.CreateVault(ctx, "Familia", []common.Address{alice, bob, carol})
		require.NoError(t, err)
		require.NoError(t, v.Deposit(ctx, alice, ether(5)))
		_, err = v.ProposeWithdrawal(ctx, alice, "rent", shop, ether(5))
		require.NoError(t, err)
		return reg
	}

	t.Run("reservation above balance", func(t *testing.T) {
		rec := build().Record()
		rec.Vaults[0].Balance = ether(4).String()
		_, err := vault.RestoreRegistry(rec, &recordingTransferer{}, nil)
		assert.ErrorIs(t, err, domain.ErrInsufficientAvailableBalance)
	})

	t.Run("voter outside member set", func(t *testing.T) {
		rec := build().Record()
		rec.Vaults[0].Proposals[0].VotesAgainst = append(rec.Vaults[0].Proposals[0].VotesAgainst, shop)
		_, err := vault.RestoreRegistry(rec, &recordingTransferer{}, nil)
		assert.ErrorContains(t, err, "not a member")
	})

	t.Run("voter on both sides", func(t *testing.T) {
		rec := build().Record()
		rec.Vaults[0].Proposals[0].VotesAgainst = []common.Address{alice}
		_, err := vault.RestoreRegistry(rec, &recordingTransferer{}, nil)
		assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	})

	t.Run("proposal ids out of order", func(t *testing.T) {
		rec := build().Record()
		rec.Vaults[0].Proposals[0].ID = 4
		_, err := vault.RestoreRegistry(rec, &recordingTransferer{}, nil)
		assert.Error(t, err)
	})

	t.Run("bad balance", func(t *testing.T) {
		rec := build().Record()
		rec.Vaults[0].Balance = "lots"
		_, err := vault.RestoreRegistry(rec, &recordingTransferer{}, nil)
		assert.Error(t, err)
	})
}
