package vault

import (
	"fmt"
	"math/big"

	"github.com/coperacha/coperacha-cli/internal/domain"
)

// Funds tracks a vault balance and the portion of it locked by pending
// withdrawal proposals. reserved never exceeds balance.
type Funds struct {
	balance  *big.Int
	reserved *big.Int
}

// NewFunds creates an empty fund tracker
func NewFunds() *Funds {
	return &Funds{
		balance:  new(big.Int),
		reserved: new(big.Int),
	}
}

// Balance returns a copy of the total balance
func (f *Funds) Balance() *big.Int {
	return new(big.Int).Set(f.balance)
}

// Reserved returns a copy of the reserved amount
func (f *Funds) Reserved() *big.Int {
	return new(big.Int).Set(f.reserved)
}

// Available returns balance minus reserved funds
func (f *Funds) Available() *big.Int {
	return new(big.Int).Sub(f.balance, f.reserved)
}

// Deposit increases the balance
func (f *Funds) Deposit(amount *big.Int) error {
	if !isPositive(amount) {
		return domain.ErrInvalidAmount
	}
	f.balance.Add(f.balance, amount)
	return nil
}

// CanReserve checks that amount is positive and fits in the available balance
func (f *Funds) CanReserve(amount *big.Int) error {
	if !isPositive(amount) {
		return domain.ErrInvalidAmount
	}
	if available := f.Available(); amount.Cmp(available) > 0 {
		return &domain.InsufficientFundsError{
			Requested: new(big.Int).Set(amount),
			Available: available,
		}
	}
	return nil
}

// Reserve locks amount for a pending withdrawal
func (f *Funds) Reserve(amount *big.Int) error {
	if err := f.CanReserve(amount); err != nil {
		return err
	}
	f.reserved.Add(f.reserved, amount)
	return nil
}

// Release unlocks a reservation without moving funds
func (f *Funds) Release(amount *big.Int) error {
	if err := f.checkReserved(amount); err != nil {
		return err
	}
	f.reserved.Sub(f.reserved, amount)
	return nil
}

// CanSettle checks that a reservation of amount exists and can be paid out
func (f *Funds) CanSettle(amount *big.Int) error {
	return f.checkReserved(amount)
}

// Settle pays out a reservation, decreasing both balance and reserved funds
func (f *Funds) Settle(amount *big.Int) error {
	if err := f.checkReserved(amount); err != nil {
		return err
	}
	f.reserved.Sub(f.reserved, amount)
	f.balance.Sub(f.balance, amount)
	return nil
}

func (f *Funds) checkReserved(amount *big.Int) error {
	if !isPositive(amount) {
		return domain.ErrInvalidAmount
	}
	if amount.Cmp(f.reserved) > 0 {
		return fmt.Errorf("release of %s wei exceeds reserved %s wei", amount, f.reserved)
	}
	return nil
}

func isPositive(amount *big.Int) bool {
	return amount != nil && amount.Sign() > 0
}
