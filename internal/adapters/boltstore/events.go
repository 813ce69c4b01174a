package boltstore

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/bytedance/sonic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/coperacha/coperacha-cli/internal/domain"
)

// appendLogs stores logs in order. Each log is kept as the JSON form of its
// EVM encoding under a monotonically increasing key, so cursor order is
// emission order.
func (s *Store) appendLogs(tx *bolt.Tx, logs []domain.EventLog) error {
	bucket, err := tx.CreateBucketIfNotExists([]byte(logsBucket))
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	for _, l := range logs {
		evmLog, err := s.codec.Encode(l)
		if err != nil {
			return err
		}
		data, err := sonic.Marshal(evmLog)
		if err != nil {
			return fmt.Errorf("failed to marshal log: %w", err)
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		if err := bucket.Put(itob(seq), data); err != nil {
			return err
		}
	}
	return nil
}

// List returns the logs matching filter in emission order. A positive
// Limit keeps only the most recent matches.
func (s *Store) List(ctx context.Context, filter domain.EventFilter) ([]domain.EventLog, error) {
	if !s.exists() {
		return nil, nil
	}

	var topic *common.Hash
	if filter.Name != "" {
		id, err := s.codec.EventID(filter.Name)
		if err != nil {
			return nil, err
		}
		topic = &id
	}

	db, err := s.open(true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var result []domain.EventLog
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(logsBucket))
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var evmLog types.Log
			if err := sonic.Unmarshal(v, &evmLog); err != nil {
				return fmt.Errorf("corrupt log %d: %w", btoi(k), err)
			}
			if filter.Emitter != nil && evmLog.Address != *filter.Emitter {
				continue
			}
			if topic != nil && (len(evmLog.Topics) == 0 || evmLog.Topics[0] != *topic) {
				continue
			}

			decoded, err := s.codec.Decode(&evmLog)
			if err != nil {
				return fmt.Errorf("corrupt log %d: %w", btoi(k), err)
			}
			result = append(result, decoded)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[len(result)-filter.Limit:]
	}
	return result, nil
}
