package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/companysearch/internal/db"
)

const defaultCASAttempts = 16

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.b().Set().Key(key).Value(rueidis.BinaryString(value)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes a key. Deleting a missing key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// UpdateKey runs an optimistic WATCH/GET/MULTI/SET/EXEC cycle on a dedicated
// connection. An aborted EXEC (the key changed underneath) is retried with a
// fresh read; fn may therefore run more than once and must not have side effects.
// A nil result from fn deletes the key.
func (s *Store) UpdateKey(ctx context.Context, key string, fn db.UpdateFunc) error {
	for range s.casAttempts {
		if err := ctx.Err(); err != nil {
			return err
		}
		committed, err := s.tryUpdate(ctx, key, fn)
		if err != nil {
			return err
		}
		if committed {
			return nil
		}
	}
	return &db.Error{Op: db.OpExec, Err: db.ErrTxConflict}
}

func (s *Store) tryUpdate(ctx context.Context, key string, fn db.UpdateFunc) (bool, error) {
	var committed bool
	err := s.client.Dedicated(func(c rueidis.DedicatedClient) error {
		if err := c.Do(ctx, c.B().Watch().Key(key).Build()).Error(); err != nil {
			return &db.Error{Op: "WATCH", Err: err}
		}

		current, err := c.Do(ctx, c.B().Get().Key(key).Build()).AsBytes()
		if err != nil && !rueidis.IsRedisNil(err) {
			_ = c.Do(ctx, c.B().Unwatch().Build()).Error()
			return &db.Error{Op: db.OpGet, Err: err}
		}

		next, err := fn(current)
		if err != nil {
			_ = c.Do(ctx, c.B().Unwatch().Build()).Error()
			return err
		}

		var write rueidis.Completed
		if next == nil {
			write = c.B().Del().Key(key).Build()
		} else {
			write = c.B().Set().Key(key).Value(rueidis.BinaryString(next)).Build()
		}

		res := c.DoMulti(ctx, c.B().Multi().Build(), write, c.B().Exec().Build())
		for _, r := range res[:2] {
			if err := r.Error(); err != nil {
				return &db.Error{Op: db.OpExec, Err: err}
			}
		}
		if err := res[2].Error(); err != nil {
			if rueidis.IsRedisNil(err) {
				return nil
			}
			return &db.Error{Op: db.OpExec, Err: err}
		}
		committed = true
		return nil
	})
	return committed, err
}
