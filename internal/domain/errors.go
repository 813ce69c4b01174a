package domain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for vault operations
var (
	// ErrNotAMember is returned when the caller is not in the vault member set
	ErrNotAMember = errors.New("not a member")

	// ErrInvalidAmount is returned for zero or negative amounts
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrZeroAddress is returned when the zero address is used where a real one is required
	ErrZeroAddress = errors.New("zero address")

	// ErrAlreadyAMember is returned when proposing an address that is already a member
	ErrAlreadyAMember = errors.New("already a member")

	// ErrUnknownProposal is returned when a proposal id is out of range
	ErrUnknownProposal = errors.New("unknown proposal")

	// ErrProposalNotPending is returned when voting on a decided proposal
	ErrProposalNotPending = errors.New("proposal not pending")

	// ErrAlreadyVoted is returned when a member votes twice on the same proposal
	ErrAlreadyVoted = errors.New("already voted")

	// ErrInsufficientAvailableBalance is returned when a withdrawal exceeds balance minus reservations
	ErrInsufficientAvailableBalance = errors.New("insufficient available balance")

	// ErrTransferFailed is returned when the payout of an approved withdrawal could not complete
	ErrTransferFailed = errors.New("transfer failed")

	// ErrQuorumNotReached is returned when executing a proposal that has not reached quorum
	ErrQuorumNotReached = errors.New("quorum not reached")

	// ErrVaultNotFound is returned when a vault handle is not in the registry
	ErrVaultNotFound = errors.New("vault not found")

	// ErrInvalidMembers is returned when a vault is created with a bad member list
	ErrInvalidMembers = errors.New("invalid members")

	// ErrEmptyName is returned when a vault is created without a name
	ErrEmptyName = errors.New("empty vault name")
)

// InsufficientFundsError carries the amounts behind ErrInsufficientAvailableBalance
type InsufficientFundsError struct {
	Requested *big.Int
	Available *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: requested %s wei, available %s wei",
		ErrInsufficientAvailableBalance, e.Requested, e.Available)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientAvailableBalance
}

// TransferError wraps the payout failure of an approved withdrawal
type TransferError struct {
	ProposalID uint64
	Recipient  common.Address
	Amount     *big.Int
	Err        error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: proposal %d paying %s wei to %s: %v",
		ErrTransferFailed, e.ProposalID, e.Amount, e.Recipient.Hex(), e.Err)
}

func (e *TransferError) Is(target error) bool {
	return target == ErrTransferFailed
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
