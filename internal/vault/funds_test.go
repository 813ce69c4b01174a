package vault

import (
	"math/big"
	"testing"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunds_DepositAndReserve(t *testing.T) {
	f := NewFunds()
	require.NoError(t, f.Deposit(big.NewInt(10)))

	require.NoError(t, f.Reserve(big.NewInt(6)))
	assert.Equal(t, big.NewInt(10), f.Balance())
	assert.Equal(t, big.NewInt(6), f.Reserved())
	assert.Equal(t, big.NewInt(4), f.Available())

	err := f.Reserve(big.NewInt(5))
	require.ErrorIs(t, err, domain.ErrInsufficientAvailableBalance)

	var insufficient *domain.InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, big.NewInt(5), insufficient.Requested)
	assert.Equal(t, big.NewInt(4), insufficient.Available)

	require.NoError(t, f.Reserve(big.NewInt(4)))
	assert.Equal(t, 0, f.Available().Sign())
}

func TestFunds_InvalidAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount *big.Int
	}{
		{name: "nil", amount: nil},
		{name: "zero", amount: big.NewInt(0)},
		{name: "negative", amount: big.NewInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFunds()
			assert.ErrorIs(t, f.Deposit(tt.amount), domain.ErrInvalidAmount)
			assert.ErrorIs(t, f.Reserve(tt.amount), domain.ErrInvalidAmount)
			assert.ErrorIs(t, f.Release(tt.amount), domain.ErrInvalidAmount)
			assert.Equal(t, 0, f.Balance().Sign())
		})
	}
}

func TestFunds_SettleAndRelease(t *testing.T) {
	f := NewFunds()
	require.NoError(t, f.Deposit(big.NewInt(10)))
	require.NoError(t, f.Reserve(big.NewInt(3)))
	require.NoError(t, f.Reserve(big.NewInt(2)))

	require.NoError(t, f.Settle(big.NewInt(3)))
	assert.Equal(t, big.NewInt(7), f.Balance())
	assert.Equal(t, big.NewInt(2), f.Reserved())

	require.NoError(t, f.Release(big.NewInt(2)))
	assert.Equal(t, big.NewInt(7), f.Balance())
	assert.Equal(t, 0, f.Reserved().Sign())

	assert.Error(t, f.Settle(big.NewInt(1)))
	assert.Error(t, f.Release(big.NewInt(1)))
}

func TestFunds_CopiesAreDetached(t *testing.T) {
	f := NewFunds()
	amount := big.NewInt(5)
	require.NoError(t, f.Deposit(amount))

	amount.SetInt64(100)
	f.Balance().SetInt64(42)

	assert.Equal(t, big.NewInt(5), f.Balance())
}
