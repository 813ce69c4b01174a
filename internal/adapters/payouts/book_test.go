package payouts

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/domain/models"
)

var (
	vaultAddr = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	shop      = common.HexToAddress("0x0000000000000000000000000000000000000b01")
	landlord  = common.HexToAddress("0x0000000000000000000000000000000000000b02")
	blocked   = common.HexToAddress("0x0000000000000000000000000000000000000b03")
)

func TestBook_Transfer(t *testing.T) {
	ctx := context.Background()
	provider := NewProvider(&config.RuntimeConfig{RejectingRecipients: []common.Address{blocked}})
	book := provider.Open(nil)

	require.NoError(t, book.Transfer(ctx, vaultAddr, shop, big.NewInt(5)))
	require.NoError(t, book.Transfer(ctx, vaultAddr, landlord, big.NewInt(7)))
	require.NoError(t, book.Transfer(ctx, vaultAddr, shop, big.NewInt(3)))

	err := book.Transfer(ctx, vaultAddr, blocked, big.NewInt(1))
	assert.ErrorContains(t, err, "rejected")

	assert.Equal(t, []*models.PayoutRecord{
		{Recipient: shop, Total: "8", Count: 2},
		{Recipient: landlord, Total: "7", Count: 1},
	}, book.Records())
}

func TestBook_OpenSeedsTotals(t *testing.T) {
	ctx := context.Background()
	provider := NewProvider(&config.RuntimeConfig{})
	book := provider.Open([]*models.PayoutRecord{
		{Recipient: landlord, Total: "100", Count: 4},
	})

	require.NoError(t, book.Transfer(ctx, vaultAddr, landlord, big.NewInt(1)))
	require.NoError(t, book.Transfer(ctx, vaultAddr, shop, big.NewInt(2)))

	assert.Equal(t, []*models.PayoutRecord{
		{Recipient: landlord, Total: "101", Count: 5},
		{Recipient: shop, Total: "2", Count: 1},
	}, book.Records())
}

func TestBook_EmptyRecords(t *testing.T) {
	book := NewProvider(&config.RuntimeConfig{}).Open(nil)
	assert.Empty(t, book.Records())
	assert.NotNil(t, book.Records())
}
