package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/companysearch/internal/db"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

// DefaultKeyPrefix namespaces tag list keys.
const DefaultKeyPrefix = "tags:"

// kvStore is the consumer interface for KV-backed tag lists (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	UpdateKey(ctx context.Context, key string, fn db.UpdateFunc) error
}

// KV keeps each user's tag list as one JSON value. The store's atomic key
// update guards against other processes; a per-user lock keeps goroutines of
// this process from racing each other into retries.
type KV struct {
	store  kvStore
	prefix string
	locks  *userLocks
}

// NewKV creates a KV-backed tag store. An empty prefix uses DefaultKeyPrefix.
func NewKV(s kvStore, prefix string) *KV {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KV{store: s, prefix: prefix, locks: newUserLocks()}
}

func (k *KV) key(user string) string { return k.prefix + user }

// Load returns the user's tags.
func (k *KV) Load(ctx context.Context, user string) ([]domtag.Tag, error) {
	raw, err := k.store.Get(ctx, k.key(user))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load tags of %s: %w", user, err)
	}
	return decodeList(user, raw)
}

// Update applies fn to the user's tags atomically.
func (k *KV) Update(ctx context.Context, user string, fn UpdateFunc) error {
	unlock := k.locks.lock(user)
	defer unlock()

	err := k.store.UpdateKey(ctx, k.key(user), func(current []byte) ([]byte, error) {
		tags, err := decodeList(user, current)
		if err != nil {
			return nil, err
		}
		next, err := fn(tags)
		if err != nil {
			return nil, err
		}
		if len(next) == 0 {
			return nil, nil
		}
		return encodeList(next)
	})
	if err != nil {
		return fmt.Errorf("update tags of %s: %w", user, err)
	}
	return nil
}
