package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/agenthands/versorium/internal/core/model"
	"github.com/agenthands/versorium/internal/logger"
)

var snapshotKey = []byte("context_graph/snapshot")

type BadgerConfig struct {
	// Path is ignored when InMemory is true.
	Path     string
	InMemory bool
}

// BadgerStore keeps the latest snapshot in an embedded BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	log *logger.Logger
}

func OpenBadgerStore(cfg BadgerConfig, log *logger.Logger) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger path is required for persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{
		db:  db,
		log: logger.OrNop(log).With("component", "badger_store"),
	}, nil
}

func (s *BadgerStore) Save(_ context.Context, snap model.GraphSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey, data)
	}); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	s.log.Info("snapshot saved", "forms", len(snap.Forms), "relations", len(snap.Relations), "bytes", len(data))
	return nil
}

func (s *BadgerStore) Load(_ context.Context) (model.GraphSnapshot, error) {
	var snap model.GraphSnapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.GraphSnapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return model.GraphSnapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return snap, nil
}

func (s *BadgerStore) Close(_ context.Context) error {
	return s.db.Close()
}
