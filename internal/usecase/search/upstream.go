package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/companysearch/internal/db"
	"github.com/kailas-cloud/companysearch/internal/domain"
	"github.com/kailas-cloud/companysearch/internal/domain/search/query"
	"github.com/kailas-cloud/companysearch/internal/domain/search/result"
	"github.com/kailas-cloud/companysearch/internal/metrics"
)

// Upstream defaults.
const (
	DefaultEngineTimeout  = 2 * time.Second
	DefaultMaxRetries     = 2
	DefaultInitialBackoff = 50 * time.Millisecond
	maxBackoffInterval    = time.Second
)

// Operation labels.
const (
	opSearch    = "search"
	opAggregate = "aggregate"
)

// UpstreamConfig bounds engine calls.
type UpstreamConfig struct {
	// Timeout applies to each attempt.
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	// MaxQPS enables a client-side rate limit when positive.
	MaxQPS float64
}

// Upstream wraps an Engine with per-attempt timeouts, retries on transport
// failures, an optional rate limit and metrics. Exhausted calls fail with
// domain.ErrUpstreamUnavailable; queries the engine rejects are not retried.
type Upstream struct {
	engine  Engine
	cfg     UpstreamConfig
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ Engine = (*Upstream)(nil)

// NewUpstream creates a guarded engine. Zero config values select defaults;
// a negative MaxRetries disables retries.
func NewUpstream(engine Engine, cfg UpstreamConfig, logger *zap.Logger) *Upstream {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultEngineTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = DefaultInitialBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	u := &Upstream{engine: engine, cfg: cfg, logger: logger}
	if cfg.MaxQPS > 0 {
		burst := int(cfg.MaxQPS)
		if burst < 1 {
			burst = 1
		}
		u.limiter = rate.NewLimiter(rate.Limit(cfg.MaxQPS), burst)
	}
	return u
}

// Search runs a guarded search.
func (u *Upstream) Search(ctx context.Context, q query.Bool, s query.Sort, limit int) (result.Window, error) {
	var w result.Window
	err := u.call(ctx, opSearch, func(ctx context.Context) error {
		var err error
		w, err = u.engine.Search(ctx, q, s, limit)
		return err
	})
	return w, err
}

// Facet runs a guarded aggregation.
func (u *Upstream) Facet(ctx context.Context, q query.Bool, field query.Field, limit int) ([]result.Bucket, error) {
	var buckets []result.Bucket
	err := u.call(ctx, opAggregate, func(ctx context.Context) error {
		var err error
		buckets, err = u.engine.Facet(ctx, q, field, limit)
		return err
	})
	return buckets, err
}

func (u *Upstream) call(ctx context.Context, op string, fn func(context.Context) error) error {
	start := time.Now()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = u.cfg.InitialBackoff
	exp.MaxInterval = maxBackoffInterval
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(u.cfg.MaxRetries)), ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		if attempt > 0 {
			metrics.EngineRetriesTotal.WithLabelValues(op).Inc()
		}
		attempt++

		if u.limiter != nil {
			if err := u.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
		defer cancel()
		err := fn(attemptCtx)
		if err == nil {
			return nil
		}
		if !retryable(ctx, err) {
			return backoff.Permanent(err)
		}
		u.logger.Warn("Engine call failed",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}, policy)

	elapsed := time.Since(start).Seconds()
	if err == nil {
		metrics.EngineRequestDuration.WithLabelValues(op, "ok").Observe(elapsed)
		return nil
	}
	metrics.EngineRequestDuration.WithLabelValues(op, "error").Observe(elapsed)

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", op, ctx.Err())
	case errors.Is(err, db.ErrQueryRejected):
		metrics.EngineFailuresTotal.WithLabelValues(op, "rejected").Inc()
		return fmt.Errorf("%s: %w", op, err)
	default:
		metrics.EngineFailuresTotal.WithLabelValues(op, "unavailable").Inc()
		u.logger.Error("Engine unavailable",
			zap.String("operation", op),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return domain.NewUpstreamUnavailable(op, err)
	}
}

// retryable reports whether another attempt can help. Engine query errors and
// a missing index are final; so is a canceled caller.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, db.ErrQueryRejected) && !errors.Is(err, db.ErrIndexNotFound)
}
