package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/domain/models"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

// LedgerStore persists the registry snapshot, the payouts ledger and the
// event log as one unit
type LedgerStore interface {
	// Load returns the committed state, or an empty state when nothing was committed yet
	Load(ctx context.Context) (*models.LedgerState, error)
	// Update runs fn on the committed state under an exclusive lock that
	// holds across processes. The state as fn leaves it is saved together
	// with the logs fn returns; returning no logs writes nothing.
	Update(ctx context.Context, fn func(state *models.LedgerState) ([]domain.EventLog, error)) error
}

// EventStore reads the ordered event log
type EventStore interface {
	List(ctx context.Context, filter domain.EventFilter) ([]domain.EventLog, error)
}

// PayoutProvider opens the payouts ledger that receives executed withdrawals
type PayoutProvider interface {
	Open(records []*models.PayoutRecord) PayoutBook
}

// PayoutBook credits withdrawal recipients and reports the resulting totals
type PayoutBook interface {
	vault.Transferer
	Records() []*models.PayoutRecord
}

// VaultSelector handles interactive selection of vaults
type VaultSelector interface {
	SelectVault(ctx context.Context, vaults []*vault.Info, prompt string) (*vault.Info, error)
}

// ProposalSelector handles interactive selection of proposals
type ProposalSelector interface {
	SelectProposal(ctx context.Context, proposals []*vault.ProposalInfo, prompt string) (*vault.ProposalInfo, error)
}

// MemberSelector handles interactive selection of vault members
type MemberSelector interface {
	SelectMembers(ctx context.Context, accounts []config.Account, prompt string) ([]common.Address, error)
}

// LocalConfigRepository manages local configuration persistence
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
