// Package tag stores per-user tag lists. Every backend serializes updates of
// one user and never blocks updates of another.
package tag

import (
	"sync"

	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

// UpdateFunc transforms a user's current tag list into the new one.
// Returning an error aborts the update and leaves the list unchanged.
// fn may run more than once when a backend retries a lost race.
type UpdateFunc = func(current []domtag.Tag) ([]domtag.Tag, error)

// userLocks hands out one mutex per user, created on demand and dropped
// once no goroutine holds or waits for it.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

// lock acquires the user's mutex and returns its release func.
func (l *userLocks) lock(user string) func() {
	l.mu.Lock()
	ul, ok := l.locks[user]
	if !ok {
		ul = &userLock{}
		l.locks[user] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, user)
		}
		l.mu.Unlock()
	}
}

// size returns the number of live user locks.
func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func cloneTags(tags []domtag.Tag) []domtag.Tag {
	if len(tags) == 0 {
		return nil
	}
	return append([]domtag.Tag(nil), tags...)
}
