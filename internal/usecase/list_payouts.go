package usecase

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// PayoutEntry is the total credited to one recipient
type PayoutEntry struct {
	Recipient common.Address
	Label     string
	Total     *big.Int
	Count     uint64
}

// ListPayouts is the use case for listing funds paid out by executed withdrawals
type ListPayouts struct {
	ledger *Ledger
}

// NewListPayouts creates a new ListPayouts use case
func NewListPayouts(ledger *Ledger) *ListPayouts {
	return &ListPayouts{ledger: ledger}
}

// Run executes the list payouts use case
func (uc *ListPayouts) Run(ctx context.Context) ([]PayoutEntry, error) {
	records, err := uc.ledger.Payouts(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]PayoutEntry, 0, len(records))
	for _, r := range records {
		total, ok := new(big.Int).SetString(r.Total, 10)
		if !ok {
			return nil, fmt.Errorf("corrupt payout total %q for %s", r.Total, r.Recipient.Hex())
		}
		entries = append(entries, PayoutEntry{
			Recipient: r.Recipient,
			Label:     uc.ledger.config.Accounts.Label(r.Recipient),
			Total:     total,
			Count:     r.Count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].Recipient.Bytes(), entries[j].Recipient.Bytes()) < 0
	})
	return entries, nil
}
