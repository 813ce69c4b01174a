package boltstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/coperacha/coperacha-cli/internal/adapters/abi"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

const (
	// FileName is the database inside the data directory
	FileName = "coperacha.db"

	stateBucket = "state"
	stateKey    = "ledger"
	logsBucket  = "logs"

	defaultLockTimeout = 5 * time.Second
)

// ErrLocked is returned when another process keeps the database locked
// for longer than the lock timeout
var ErrLocked = errors.New("data directory is locked by another coperacha process")

// Store keeps the ledger snapshot and the append-only event log in one bolt
// file. Writers hold bolt's exclusive file lock for the whole transaction,
// so updates from separate processes sharing a data directory are applied
// one after the other and the snapshot never drifts from the log.
type Store struct {
	path        string
	lockTimeout time.Duration
	codec       *abi.LogCodec
	log         *slog.Logger
}

// NewStore creates a new Store
func NewStore(cfg *config.RuntimeConfig, codec *abi.LogCodec, log *slog.Logger) *Store {
	return &Store{
		path:        filepath.Join(cfg.DataDir, FileName),
		lockTimeout: defaultLockTimeout,
		codec:       codec,
		log:         log.With("component", "BoltStore"),
	}
}

// GetPath returns the path to the database file
func (s *Store) GetPath() string {
	return s.path
}

// open opens the database for one call and the caller closes it when done,
// so the file lock is never held between commands.
func (s *Store) open(readOnly bool) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: s.lockTimeout, ReadOnly: readOnly})
	if errors.Is(err, bolt.ErrTimeout) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	return db, nil
}

// exists reports whether anything was ever committed
func (s *Store) exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

var (
	_ usecase.LedgerStore = (*Store)(nil)
	_ usecase.EventStore  = (*Store)(nil)
)
