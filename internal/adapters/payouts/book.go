// Package payouts keeps the running totals credited to withdrawal recipients.
package payouts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/domain/models"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// Provider opens payout books. Recipients on the reject list refuse every
// transfer, which lets a project model accounts that cannot receive funds.
type Provider struct {
	rejecting map[common.Address]struct{}
}

// NewProvider creates a new Provider from the runtime configuration
func NewProvider(cfg *config.RuntimeConfig) *Provider {
	rejecting := make(map[common.Address]struct{}, len(cfg.RejectingRecipients))
	for _, addr := range cfg.RejectingRecipients {
		rejecting[addr] = struct{}{}
	}
	return &Provider{rejecting: rejecting}
}

// Open builds a book seeded with previously persisted records
func (p *Provider) Open(records []*models.PayoutRecord) usecase.PayoutBook {
	b := &Book{
		rejecting: p.rejecting,
		index:     make(map[common.Address]int, len(records)),
	}
	for _, r := range records {
		total, ok := new(big.Int).SetString(r.Total, 10)
		if !ok {
			total = new(big.Int)
		}
		b.index[r.Recipient] = len(b.entries)
		b.entries = append(b.entries, &entry{recipient: r.Recipient, total: total, count: r.Count})
	}
	return b
}

type entry struct {
	recipient common.Address
	total     *big.Int
	count     uint64
}

// Book credits recipients in memory until its records are persisted
type Book struct {
	rejecting map[common.Address]struct{}
	entries   []*entry
	index     map[common.Address]int
}

// Transfer credits amount to the recipient
func (b *Book) Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error {
	if _, ok := b.rejecting[to]; ok {
		return fmt.Errorf("recipient %s rejected the transfer", to.Hex())
	}

	i, ok := b.index[to]
	if !ok {
		i = len(b.entries)
		b.index[to] = i
		b.entries = append(b.entries, &entry{recipient: to, total: new(big.Int)})
	}
	e := b.entries[i]
	e.total = new(big.Int).Add(e.total, amount)
	e.count++
	return nil
}

// Records returns the totals in the order recipients were first paid
func (b *Book) Records() []*models.PayoutRecord {
	records := make([]*models.PayoutRecord, 0, len(b.entries))
	for _, e := range b.entries {
		records = append(records, &models.PayoutRecord{
			Recipient: e.recipient,
			Total:     e.total.String(),
			Count:     e.count,
		})
	}
	return records
}

var _ usecase.PayoutProvider = (*Provider)(nil)
