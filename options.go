package companysearch

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/companysearch/internal/config"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	cfg    config.Config
	logger *zap.Logger
}

// WithRedis runs searches on a Redis 8 instance with the search module.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.cfg.Engine.Driver = config.EngineRedis
		c.cfg.Engine.Addrs = nil
		if addr != "" {
			c.cfg.Engine.Addrs = []string{addr}
		}
		c.cfg.Engine.Password = password
	}
}

// WithBleve runs searches on an embedded bleve index stored at path.
// An empty path keeps the index in memory (the default).
func WithBleve(path string) Option {
	return func(c *clientConfig) {
		c.cfg.Engine.Driver = config.EngineBleve
		c.cfg.Engine.BlevePath = path
	}
}

// WithIndex sets the company index name. Default: "companies".
func WithIndex(name string) Option {
	return func(c *clientConfig) {
		c.cfg.Engine.Index = name
	}
}

// WithoutIndexCreation skips creating the company index on New.
// Use when the index is managed elsewhere.
func WithoutIndexCreation() Option {
	return func(c *clientConfig) {
		c.cfg.Engine.CreateIndex = false
	}
}

// WithEngineTimeout bounds each engine call. Default: 2s.
func WithEngineTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.cfg.Engine.TimeoutMS = int(d / time.Millisecond)
	}
}

// WithRetries sets the retry count for transient engine failures.
// Zero keeps the default; negative disables retries.
func WithRetries(n int) Option {
	return func(c *clientConfig) {
		if n < 0 {
			n = -1
		}
		c.cfg.Engine.MaxRetries = n
	}
}

// WithRateLimit caps engine calls per second. Zero means unlimited.
func WithRateLimit(qps float64) Option {
	return func(c *clientConfig) {
		c.cfg.Engine.MaxQPS = qps
	}
}

// WithRedisTags keeps tags in the Redis engine under keyPrefix.
// Requires WithRedis.
func WithRedisTags(keyPrefix string) Option {
	return func(c *clientConfig) {
		c.cfg.Tags.Driver = config.TagsRedis
		c.cfg.Tags.KeyPrefix = keyPrefix
	}
}

// WithBadgerTags keeps tags in an embedded badger database at path.
func WithBadgerTags(path string) Option {
	return func(c *clientConfig) {
		c.cfg.Tags.Driver = config.TagsBadger
		c.cfg.Tags.BadgerPath = path
	}
}

// WithPostgresTags keeps tags in PostgreSQL. Migrations run on New.
func WithPostgresTags(dsn string) Option {
	return func(c *clientConfig) {
		c.cfg.Tags.Driver = config.TagsPostgres
		c.cfg.Tags.PostgresDSN = dsn
	}
}

// WithRegions replaces the built-in region set.
func WithRegions(regions ...Region) Option {
	return func(c *clientConfig) {
		rs := make([]config.RegionConfig, len(regions))
		for i, r := range regions {
			rs[i] = config.RegionConfig{
				ID:      r.ID,
				Label:   r.Label,
				Locale:  r.Locale,
				Country: r.Country,
				Aliases: r.Aliases,
			}
		}
		c.cfg.Regions = rs
	}
}

// WithSynonyms adds a named group of equivalent terms to the engine.
func WithSynonyms(group string, terms ...string) Option {
	return func(c *clientConfig) {
		if c.cfg.Synonyms == nil {
			c.cfg.Synonyms = make(map[string][]string)
		}
		c.cfg.Synonyms[group] = terms
	}
}

// WithIndustryTerms maps a free-text phrase to the industries it stands for.
func WithIndustryTerms(phrase string, industries ...string) Option {
	return func(c *clientConfig) {
		if c.cfg.Understanding.Industries == nil {
			c.cfg.Understanding.Industries = make(map[string][]string)
		}
		c.cfg.Understanding.Industries[phrase] = industries
	}
}

// WithFormattedNumbers adds locale-formatted employee counts to hits.
func WithFormattedNumbers() Option {
	return func(c *clientConfig) {
		c.cfg.Search.FormatNumbers = true
	}
}

// WithLogger enables structured logging. Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
