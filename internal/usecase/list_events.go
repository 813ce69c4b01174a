package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
)

// ListEventsParams contains parameters for querying the event history
type ListEventsParams struct {
	// Vault restricts the history to one emitter; zero uses the configured vault
	Vault common.Address
	// All ignores the configured vault and lists every emitter
	All   bool
	Event string
	Limit int
}

// ListEventsResult contains events in emission order
type ListEventsResult struct {
	Events []domain.EventLog
	Vault  common.Address
}

// ListEvents is the use case for reading the event history
type ListEvents struct {
	config *config.RuntimeConfig
	events EventStore
}

// NewListEvents creates a new ListEvents use case
func NewListEvents(cfg *config.RuntimeConfig, events EventStore) *ListEvents {
	return &ListEvents{
		config: cfg,
		events: events,
	}
}

// Run executes the list events use case
func (uc *ListEvents) Run(ctx context.Context, params ListEventsParams) (*ListEventsResult, error) {
	filter := domain.EventFilter{Limit: params.Limit}

	if params.Event != "" {
		name, err := domain.ParseEventType(params.Event)
		if err != nil {
			return nil, err
		}
		filter.Name = name
	}

	emitter := params.Vault
	if emitter == (common.Address{}) && !params.All {
		emitter = uc.config.Vault
	}
	if emitter != (common.Address{}) {
		filter.Emitter = &emitter
	}

	logs, err := uc.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to read event history: %w", err)
	}
	return &ListEventsResult{Events: logs, Vault: emitter}, nil
}
