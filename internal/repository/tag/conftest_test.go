package tag

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/companysearch/internal/domain/search/filter"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

type repository interface {
	Load(ctx context.Context, user string) ([]domtag.Tag, error)
	Update(ctx context.Context, user string, fn UpdateFunc) error
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTag(t *testing.T, id, user, name string, offset time.Duration) domtag.Tag {
	t.Helper()
	country := "germany"
	tg, err := domtag.New(id, user, name, domtag.Snapshot{
		Filters:     filter.Set{Industry: []string{"internet"}, Country: &country},
		RegionScope: "de",
	}, epoch.Add(offset))
	require.NoError(t, err)
	return tg
}

func appendTag(tg domtag.Tag) UpdateFunc {
	return func(cur []domtag.Tag) ([]domtag.Tag, error) {
		for i := range cur {
			if domtag.SameName(cur[i].Name(), tg.Name()) {
				return nil, fmt.Errorf("duplicate %s", tg.Name())
			}
		}
		return append(cur, tg), nil
	}
}

// runRepositoryContract checks the behavior every backend shares.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) repository) {
	t.Run("empty", func(t *testing.T) {
		repo := newRepo(t)
		tags, err := repo.Load(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Update(ctx, "u1", appendTag(newTag(t, "a", "u1", "Berlin tech", 0))))

		tags, err := repo.Load(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, tags, 1)
		got := tags[0]
		assert.Equal(t, "a", got.ID())
		assert.Equal(t, "u1", got.UserID())
		assert.Equal(t, "Berlin tech", got.Name())
		assert.True(t, got.CreatedAt().Equal(epoch))
		snap := got.Snapshot()
		assert.Equal(t, "de", snap.RegionScope)
		assert.Equal(t, []string{"internet"}, snap.Filters.Industry)
		require.NotNil(t, snap.Filters.Country)
		assert.Equal(t, "germany", *snap.Filters.Country)

		other, err := repo.Load(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("fn error leaves list", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Update(ctx, "u1", appendTag(newTag(t, "a", "u1", "one", 0))))

		boom := errors.New("boom")
		err := repo.Update(ctx, "u1", func([]domtag.Tag) ([]domtag.Tag, error) { return nil, boom })
		require.ErrorIs(t, err, boom)

		tags, err := repo.Load(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Update(ctx, "u1", appendTag(newTag(t, "a", "u1", "one", 0))))
		require.NoError(t, repo.Update(ctx, "u1", appendTag(newTag(t, "b", "u1", "two", time.Second))))
		require.NoError(t, repo.Update(ctx, "u1", func(cur []domtag.Tag) ([]domtag.Tag, error) {
			var out []domtag.Tag
			for _, tg := range cur {
				if tg.ID() != "a" {
					out = append(out, tg)
				}
			}
			return out, nil
		}))

		tags, err := repo.Load(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "b", tags[0].ID())
	})

	t.Run("concurrent creates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		const n = 32

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			tg := newTag(t, fmt.Sprintf("id-%02d", i), "u1", fmt.Sprintf("tag %02d", i), time.Duration(i)*time.Millisecond)
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.Update(ctx, "u1", appendTag(tg))
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		tags, err := repo.Load(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, tags, n)
		ids := make([]string, 0, n)
		for _, tg := range tags {
			ids = append(ids, tg.ID())
		}
		sort.Strings(ids)
		for i, id := range ids {
			assert.Equal(t, fmt.Sprintf("id-%02d", i), id)
		}
	})

	t.Run("concurrent duplicate names", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		const n = 16

		var wg sync.WaitGroup
		var mu sync.Mutex
		ok := 0
		for i := 0; i < n; i++ {
			tg := newTag(t, fmt.Sprintf("dup-%02d", i), "u1", "Same", 0)
			wg.Add(1)
			go func() {
				defer wg.Done()
				if repo.Update(ctx, "u1", appendTag(tg)) == nil {
					mu.Lock()
					ok++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, ok)
		tags, err := repo.Load(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})
}
