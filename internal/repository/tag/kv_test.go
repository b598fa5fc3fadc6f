package tag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companysearch/internal/db"
	"github.com/kailas-cloud/companysearch/internal/db/badger"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

func newBadgerKV(t *testing.T) repository {
	t.Helper()
	s, err := badger.Open(badger.Config{InMemory: true}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return NewKV(s, "")
}

func TestKV_Badger(t *testing.T) {
	runRepositoryContract(t, newBadgerKV)
}

// fakeKV records keys and fails on demand.
type fakeKV struct {
	data   map[string][]byte
	getErr error
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) UpdateKey(_ context.Context, key string, fn db.UpdateFunc) error {
	next, err := fn(f.data[key])
	if err != nil {
		return err
	}
	if next == nil {
		delete(f.data, key)
		return nil
	}
	f.data[key] = next
	return nil
}

func TestKV_KeyLayout(t *testing.T) {
	f := &fakeKV{data: map[string][]byte{}}
	kv := NewKV(f, "app:tags:")
	require.NoError(t, kv.Update(context.Background(), "u1", appendTag(newTag(t, "a", "u1", "one", 0))))

	raw, ok := f.data["app:tags:u1"]
	require.True(t, ok)
	assert.Contains(t, string(raw), `"name":"one"`)
	assert.Contains(t, string(raw), `"country_scope":"de"`)
}

func TestKV_EmptyListDeletesKey(t *testing.T) {
	f := &fakeKV{data: map[string][]byte{}}
	kv := NewKV(f, "")
	ctx := context.Background()
	require.NoError(t, kv.Update(ctx, "u1", appendTag(newTag(t, "a", "u1", "one", 0))))
	require.NoError(t, kv.Update(ctx, "u1", func([]domtag.Tag) ([]domtag.Tag, error) { return nil, nil }))
	assert.Empty(t, f.data)
}

func TestKV_LoadErrors(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		boom := errors.New("boom")
		kv := NewKV(&fakeKV{getErr: boom}, "")
		_, err := kv.Load(context.Background(), "u1")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("corrupt value", func(t *testing.T) {
		kv := NewKV(&fakeKV{data: map[string][]byte{DefaultKeyPrefix + "u1": []byte("{")}}, "")
		_, err := kv.Load(context.Background(), "u1")
		assert.Error(t, err)
	})
}
