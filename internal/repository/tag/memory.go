package tag

import (
	"context"
	"sync"

	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

// Memory keeps tag lists in process memory. Lists are replaced, never
// mutated in place, so Load always sees a complete pre- or post-state.
type Memory struct {
	locks *userLocks

	mu    sync.RWMutex
	users map[string][]domtag.Tag
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{locks: newUserLocks(), users: make(map[string][]domtag.Tag)}
}

// Load returns a copy of the user's tags.
func (m *Memory) Load(_ context.Context, user string) ([]domtag.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTags(m.users[user]), nil
}

// Update applies fn to the user's tags under the user's lock.
func (m *Memory) Update(ctx context.Context, user string, fn UpdateFunc) error {
	unlock := m.locks.lock(user)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	current := cloneTags(m.users[user])
	m.mu.RUnlock()

	next, err := fn(current)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if len(next) == 0 {
		delete(m.users, user)
	} else {
		m.users[user] = cloneTags(next)
	}
	m.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }
