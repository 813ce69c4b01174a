package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/domain/models"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// ErrNoSender is returned when an operation needs a caller and none is configured
var ErrNoSender = errors.New("no sender configured: pass --from or run `coperacha config set from <account>`")

// Ledger restores the persisted registry, runs one operation against it and
// commits the result. State is saved only when the operation emitted logs,
// so a rejected call leaves the store untouched.
type Ledger struct {
	config  *config.RuntimeConfig
	store   LedgerStore
	payouts PayoutProvider
	log     *slog.Logger
}

// NewLedger creates a new Ledger
func NewLedger(cfg *config.RuntimeConfig, store LedgerStore, payouts PayoutProvider, log *slog.Logger) *Ledger {
	return &Ledger{
		config:  cfg,
		store:   store,
		payouts: payouts,
		log:     log.With("component", "Ledger"),
	}
}

// eventBuffer collects the logs emitted while an operation runs
type eventBuffer struct {
	logs []domain.EventLog
}

func (b *eventBuffer) Emit(log domain.EventLog) {
	b.logs = append(b.logs, log)
}

type session struct {
	registry *vault.Registry
	book     PayoutBook
	buffer   *eventBuffer
}

func (l *Ledger) restore(state *models.LedgerState) (*session, error) {
	s := &session{
		book:   l.payouts.Open(state.Payouts),
		buffer: &eventBuffer{},
	}

	if state.Registry == nil {
		s.registry = vault.NewRegistry(l.config.Registry, s.book, s.buffer)
		return s, nil
	}

	if state.Registry.Address != l.config.Registry {
		l.log.Warn("stored registry differs from configured registry, using stored one",
			"stored", state.Registry.Address.Hex(), "configured", l.config.Registry.Hex())
	}
	var err error
	s.registry, err = vault.RestoreRegistry(state.Registry, s.book, s.buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to restore registry: %w", err)
	}
	return s, nil
}

// View runs fn against the committed registry without persisting anything
func (l *Ledger) View(ctx context.Context, fn func(reg *vault.Registry) error) error {
	state, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	s, err := l.restore(state)
	if err != nil {
		return err
	}
	return fn(s.registry)
}

// Update runs fn against the registry inside one store transaction and
// commits its effects. The logs emitted by fn are returned even when fn
// fails, since a failed transfer still records the vote that triggered it.
func (l *Ledger) Update(ctx context.Context, fn func(reg *vault.Registry) error) ([]domain.EventLog, error) {
	var (
		logs  []domain.EventLog
		opErr error
	)
	err := l.store.Update(ctx, func(state *models.LedgerState) ([]domain.EventLog, error) {
		s, err := l.restore(state)
		if err != nil {
			return nil, err
		}

		opErr = fn(s.registry)
		logs = s.buffer.logs
		if len(logs) == 0 {
			return nil, nil
		}

		state.Version = models.LedgerVersion
		state.Registry = s.registry.Record()
		state.Payouts = s.book.Records()
		return logs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit ledger: %w", err)
	}
	if len(logs) == 0 {
		return nil, opErr
	}

	l.log.Debug("operation committed", "events", len(logs), "error", opErr)
	return logs, opErr
}

// Payouts returns the credited recipient totals
func (l *Ledger) Payouts(ctx context.Context) ([]*models.PayoutRecord, error) {
	state, err := l.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return state.Payouts, nil
}

// sender returns the configured caller
func sender(cfg *config.RuntimeConfig) (common.Address, error) {
	if cfg.From == (common.Address{}) {
		return common.Address{}, ErrNoSender
	}
	return cfg.From, nil
}
