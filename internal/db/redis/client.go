package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/rueidis"

	"github.com/kailas-cloud/companysearch/internal/db"
)

var (
	_ db.Store    = (*Store)(nil)
	_ db.KVStore  = (*Store)(nil)
	_ db.AtomicKV = (*Store)(nil)
)

// Server error fragments that map onto db sentinels.
const (
	msgIndexExists  = "index already exists"
	msgUnknownIndex = "unknown index name"
)

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// CASAttempts bounds optimistic WATCH/EXEC retries in UpdateKey (default 16).
	CASAttempts int
	// DialTimeout bounds connection setup. Zero keeps the client default.
	DialTimeout time.Duration
}

// Store is the Redis 8 company search engine and tag KV, over rueidis.
type Store struct {
	client      rueidis.Client
	casAttempts int
}

// NewStore connects to Redis. The connection is lazy; use WaitForReady.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: at least one address is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		// FT.SEARCH and FT.AGGREGATE replies are parsed in their RESP2 array shape.
		AlwaysRESP2: true,
		Dialer:      net.Dialer{Timeout: cfg.DialTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("redis: create client: %w", err)
	}
	attempts := cfg.CASAttempts
	if attempts <= 0 {
		attempts = defaultCASAttempts
	}
	return &Store{client: client, casAttempts: attempts}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() { s.client.Close() }

// WaitForReady pings with exponential backoff until Redis answers or timeout passes.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 50 * time.Millisecond
	exp.MaxInterval = time.Second
	exp.MaxElapsedTime = timeout

	var last error
	err := backoff.Retry(func() error {
		last = s.Ping(ctx)
		return last
	}, backoff.WithContext(exp, ctx))
	if err != nil {
		if last == nil {
			last = err
		}
		return fmt.Errorf("redis not ready after %s: %w", timeout, last)
	}
	return nil
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder { return s.client.B() }

// isRedisErr reports whether err is a server error reply containing msg, ignoring case.
// Transport failures never match.
func isRedisErr(err error, msg string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), msg)
}

// indexErr maps an index command failure onto db sentinels.
func indexErr(op string, err error) error {
	switch {
	case isRedisErr(err, msgUnknownIndex):
		return db.ErrIndexNotFound
	case isRedisErr(err, msgIndexExists):
		return db.ErrIndexExists
	default:
		return &db.Error{Op: op, Err: err}
	}
}
