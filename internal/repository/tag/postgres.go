package tag

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/companysearch/internal/db/postgres"
	"github.com/kailas-cloud/companysearch/internal/domain"
	domtag "github.com/kailas-cloud/companysearch/internal/domain/tag"
)

// pgStore is the consumer interface for the postgres tag table (ISP).
type pgStore interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	sqlLockUser = `SELECT pg_advisory_xact_lock(hashtext($1))`
	sqlSelect   = `SELECT id, name, filter_snapshot, created_at FROM tags WHERE user_id = $1 ORDER BY created_at, id`
	sqlInsert   = `INSERT INTO tags (id, user_id, name, filter_snapshot, created_at) VALUES ($1, $2, $3, $4, $5)`
	sqlDelete   = `DELETE FROM tags WHERE user_id = $1 AND id = $2`
)

type tagRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Snapshot  []byte    `db:"filter_snapshot"`
	CreatedAt time.Time `db:"created_at"`
}

// Postgres keeps tags as rows. Each update runs in one transaction holding a
// transaction-scoped advisory lock on the user id.
type Postgres struct {
	pool pgStore
}

// NewPostgres creates a postgres-backed tag store. The schema must be migrated.
func NewPostgres(pool pgStore) *Postgres {
	return &Postgres{pool: pool}
}

// Load returns the user's tags.
func (p *Postgres) Load(ctx context.Context, user string) ([]domtag.Tag, error) {
	tags, err := selectTags(ctx, p.pool, user)
	if err != nil {
		return nil, fmt.Errorf("load tags of %s: %w", user, err)
	}
	return tags, nil
}

// Update applies fn to the user's tags and writes the difference.
func (p *Postgres) Update(ctx context.Context, user string, fn UpdateFunc) (err error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tag update: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, sqlLockUser, user); err != nil {
		return fmt.Errorf("lock tags of %s: %w", user, err)
	}
	current, err := selectTags(ctx, tx, user)
	if err != nil {
		return fmt.Errorf("load tags of %s: %w", user, err)
	}
	next, err := fn(cloneTags(current))
	if err != nil {
		return err
	}
	if err = applyDiff(ctx, tx, user, current, next); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tag update: %w", err)
	}
	return nil
}

// Ping verifies connectivity.
func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func selectTags(ctx context.Context, q rowQuerier, user string) ([]domtag.Tag, error) {
	rows, err := q.Query(ctx, sqlSelect, user)
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[tagRow])
	if err != nil {
		return nil, err
	}

	tags := make([]domtag.Tag, 0, len(records))
	for _, r := range records {
		var dto snapshotDTO
		if err := json.Unmarshal(r.Snapshot, &dto); err != nil {
			return nil, fmt.Errorf("decode snapshot of tag %s: %w", r.ID, err)
		}
		tags = append(tags, domtag.Reconstruct(r.ID, user, r.Name, fromSnapshotDTO(dto), r.CreatedAt))
	}
	return tags, nil
}

// applyDiff deletes tags missing from next and inserts tags new in next.
func applyDiff(ctx context.Context, q execer, user string, current, next []domtag.Tag) error {
	keep := make(map[string]bool, len(next))
	for i := range next {
		keep[next[i].ID()] = true
	}
	existing := make(map[string]bool, len(current))
	for i := range current {
		id := current[i].ID()
		existing[id] = true
		if keep[id] {
			continue
		}
		if _, err := q.Exec(ctx, sqlDelete, user, id); err != nil {
			return fmt.Errorf("delete tag %s: %w", id, err)
		}
	}

	for i := range next {
		t := &next[i]
		if existing[t.ID()] {
			continue
		}
		snap, err := json.Marshal(toSnapshotDTO(t.Snapshot()))
		if err != nil {
			return fmt.Errorf("encode snapshot of tag %s: %w", t.ID(), err)
		}
		if _, err := q.Exec(ctx, sqlInsert, t.ID(), user, t.Name(), snap, t.CreatedAt()); err != nil {
			if postgres.IsUniqueViolation(err) {
				return domain.NewConflict("tag %q already exists", t.Name())
			}
			return fmt.Errorf("insert tag %s: %w", t.ID(), err)
		}
	}
	return nil
}
