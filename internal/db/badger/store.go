package badger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companysearch/internal/db"
)

// Compile-time checks: Store is a transactional KV.
var (
	_ db.KVStore  = (*Store)(nil)
	_ db.AtomicKV = (*Store)(nil)
	_ db.Pinger   = (*Store)(nil)
)

const defaultConflictRetries = 16

// Config holds badger parameters.
type Config struct {
	// Path is the data directory; ignored when InMemory is set.
	Path     string
	InMemory bool
	// ConflictRetries bounds transaction retries on ErrConflict (default 16).
	ConflictRetries int
}

// Store wraps a badger.DB as a key-value store with serializable updates.
type Store struct {
	db      *badger.DB
	retries int
}

// zapAdapter adapts zap to the badger.Logger interface.
type zapAdapter struct {
	log *zap.SugaredLogger
}

var _ badger.Logger = (*zapAdapter)(nil)

func (a *zapAdapter) Errorf(msg string, items ...any)   { a.log.Errorf(msg, items...) }
func (a *zapAdapter) Warningf(msg string, items ...any) { a.log.Warnf(msg, items...) }
func (a *zapAdapter) Infof(msg string, items ...any)    { a.log.Infof(msg, items...) }
func (a *zapAdapter) Debugf(msg string, items ...any)   { a.log.Debugf(msg, items...) }

// Open opens (or creates) a badger database.
func Open(cfg Config, log *zap.Logger) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger path is required")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create badger dir: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts.Logger = &zapAdapter{log: log.Named("badger").Sugar()}
	opts.Compression = options.None

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	retries := cfg.ConflictRetries
	if retries <= 0 {
		retries = defaultConflictRetries
	}
	return &Store{db: bdb, retries: retries}, nil
}

// Ping reports whether the database is open.
func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return &db.Error{Op: db.OpPing, Err: errors.New("badger closed")}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return out, nil
}

// Set stores a value at the given key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// UpdateKey reads and writes key inside one read-write transaction.
// badger detects a concurrent write to the key at commit time (ErrConflict);
// the update is then retried with a fresh read, so fn must be free of side effects.
// A nil result from fn deletes the key.
func (s *Store) UpdateKey(ctx context.Context, key string, fn db.UpdateFunc) error {
	k := []byte(key)
	for range s.retries {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.Update(func(txn *badger.Txn) error {
			var current []byte
			item, err := txn.Get(k)
			switch {
			case err == nil:
				if current, err = item.ValueCopy(nil); err != nil {
					return err
				}
			case errors.Is(err, badger.ErrKeyNotFound):
			default:
				return err
			}

			next, err := fn(current)
			if err != nil {
				return err
			}
			if next == nil {
				return txn.Delete(k)
			}
			return txn.Set(k, next)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		return err
	}
	return &db.Error{Op: db.OpExec, Err: db.ErrTxConflict}
}
