package tag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

func TestMemory(t *testing.T) {
	runRepositoryContract(t, func(*testing.T) repository { return NewMemory() })
}

func TestMemory_LoadReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Update(ctx, "u1", appendTag(newTag(t, "a", "u1", "one", 0))))

	tags, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	tags[0] = newTag(t, "x", "u1", "changed", 0)

	again, err := m.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].ID())
}

func TestMemory_CanceledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Update(ctx, "u1", func(cur []domtag.Tag) ([]domtag.Tag, error) {
		t.Error("fn must not run")
		return cur, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserLocks_Released(t *testing.T) {
	l := newUserLocks()
	unlockA := l.lock("a")
	unlockB := l.lock("b")
	assert.Equal(t, 2, l.size())
	unlockA()
	unlockB()
	assert.Equal(t, 0, l.size())
}
