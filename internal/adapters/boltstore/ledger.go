package boltstore

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/bytedance/sonic"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/models"
)

// Load returns the committed ledger state, or an empty state when nothing
// was committed yet
func (s *Store) Load(ctx context.Context) (*models.LedgerState, error) {
	if !s.exists() {
		return emptyState(), nil
	}

	db, err := s.open(true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var state *models.LedgerState
	err = db.View(func(tx *bolt.Tx) error {
		state, err = readState(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Update runs fn against the committed state inside a single write
// transaction. The state as fn leaves it and the logs fn returns are
// committed together. When fn returns no logs nothing is written, and an
// error from fn rolls the transaction back.
func (s *Store) Update(ctx context.Context, fn func(state *models.LedgerState) ([]domain.EventLog, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	db, err := s.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		state, err := readState(tx)
		if err != nil {
			return err
		}

		logs, err := fn(state)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			return nil
		}

		if err := writeState(tx, state); err != nil {
			return err
		}
		if err := s.appendLogs(tx, logs); err != nil {
			return err
		}
		s.log.Debug("committed ledger", "events", len(logs))
		return nil
	})
}

func emptyState() *models.LedgerState {
	return &models.LedgerState{Version: models.LedgerVersion}
}

func readState(tx *bolt.Tx) (*models.LedgerState, error) {
	bucket := tx.Bucket([]byte(stateBucket))
	if bucket == nil {
		return emptyState(), nil
	}
	data := bucket.Get([]byte(stateKey))
	if data == nil {
		return emptyState(), nil
	}

	var state models.LedgerState
	if err := sonic.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse ledger state: %w", err)
	}
	if state.Version != models.LedgerVersion {
		return nil, fmt.Errorf("unsupported ledger version %q (expected %s)", state.Version, models.LedgerVersion)
	}
	return &state, nil
}

func writeState(tx *bolt.Tx, state *models.LedgerState) error {
	bucket, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	data, err := sonic.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger state: %w", err)
	}
	return bucket.Put([]byte(stateKey), data)
}
