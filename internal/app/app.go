// Package app is the composition root shared by the server binary and the
// embedded client: it turns a config.Config into wired services.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/companysearch/internal/config"
	"github.com/kailas-cloud/companysearch/internal/db"
	dbbadger "github.com/kailas-cloud/companysearch/internal/db/badger"
	dbbleve "github.com/kailas-cloud/companysearch/internal/db/bleve"
	dbpostgres "github.com/kailas-cloud/companysearch/internal/db/postgres"
	dbredis "github.com/kailas-cloud/companysearch/internal/db/redis"
	"github.com/kailas-cloud/companysearch/internal/domain/company"
	"github.com/kailas-cloud/companysearch/internal/domain/region"
	"github.com/kailas-cloud/companysearch/internal/metrics"
	companyrepo "github.com/kailas-cloud/companysearch/internal/repository/company"
	tagrepo "github.com/kailas-cloud/companysearch/internal/repository/tag"
	chitransport "github.com/kailas-cloud/companysearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/companysearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/companysearch/internal/usecase/search"
	taguc "github.com/kailas-cloud/companysearch/internal/usecase/tag"
	"github.com/kailas-cloud/companysearch/internal/usecase/understanding"
)

// App holds the wired services and owns every opened resource.
type App struct {
	cfg       config.Config
	logger    *zap.Logger
	engine    db.Store
	regions   *region.Registry
	companies *companyrepo.Repo
	search    *searchuc.Service
	tags      *taguc.Service
	health    *healthuc.Service
	closers   []func()
}

// tagBackend is a tag repository plus the component its health depends on.
type tagBackend struct {
	repo   taguc.Repository
	pinger healthuc.Pinger
}

// New opens the engine and the tag store and wires the services.
// The caller must Close the App.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (_ *App, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.regions, err = RegionRegistry(cfg.Regions)
	if err != nil {
		return nil, err
	}

	var redisStore *dbredis.Store
	switch cfg.Engine.Driver {
	case config.EngineRedis:
		redisStore, err = dbredis.NewStore(dbredis.Config{
			Addrs:    cfg.Engine.Addrs,
			Password: cfg.Engine.Password,
		})
		a.engine = redisStore
	case config.EngineBleve:
		a.engine, err = dbbleve.NewStore(dbbleve.Config{Path: cfg.Engine.BlevePath})
	default:
		err = fmt.Errorf("unknown engine driver %q", cfg.Engine.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open engine: %w", err)
	}
	a.closers = append(a.closers, a.engine.Close)

	tags, err := a.openTags(ctx, redisStore)
	if err != nil {
		return nil, err
	}

	metrics.RegisterEngineMetrics()

	a.companies = companyrepo.New(a.engine, cfg.Engine.Index)
	upstream := searchuc.NewUpstream(a.companies, searchuc.UpstreamConfig{
		Timeout:    time.Duration(cfg.Engine.TimeoutMS) * time.Millisecond,
		MaxRetries: cfg.Engine.MaxRetries,
		MaxQPS:     cfg.Engine.MaxQPS,
	}, logger)

	vocab := understanding.DefaultVocabulary(a.regions).Merge(understanding.Vocabulary{
		Industries: cfg.Understanding.Industries,
		Localities: cfg.Understanding.Localities,
		Countries:  cfg.Understanding.Countries,
	})
	a.search = searchuc.New(upstream, understanding.New(vocab), a.regions, searchuc.Config{
		MaxWindow:     cfg.Search.MaxWindow,
		FacetSize:     cfg.Search.FacetSize,
		FormatNumbers: cfg.Search.FormatNumbers,
	})
	a.tags = taguc.New(tags.repo, a.search, a.regions)
	a.health = healthuc.New(map[string]healthuc.Pinger{
		healthuc.ComponentEngine: a.engine,
		healthuc.ComponentTags:   tags.pinger,
	})
	return a, nil
}

func (a *App) openTags(ctx context.Context, redisStore *dbredis.Store) (tagBackend, error) {
	tc := a.cfg.Tags
	switch tc.Driver {
	case config.TagsMemory, "":
		m := tagrepo.NewMemory()
		return tagBackend{repo: m, pinger: m}, nil
	case config.TagsRedis:
		if redisStore == nil {
			return tagBackend{}, fmt.Errorf("tags driver %q needs the redis engine", tc.Driver)
		}
		return tagBackend{repo: tagrepo.NewKV(redisStore, tc.KeyPrefix), pinger: redisStore}, nil
	case config.TagsBadger:
		bs, err := dbbadger.Open(dbbadger.Config{Path: tc.BadgerPath}, a.logger)
		if err != nil {
			return tagBackend{}, fmt.Errorf("open badger tag store: %w", err)
		}
		a.closers = append(a.closers, bs.Close)
		return tagBackend{repo: tagrepo.NewKV(bs, tc.KeyPrefix), pinger: bs}, nil
	case config.TagsPostgres:
		pg, err := dbpostgres.Open(ctx, dbpostgres.Config{DSN: tc.PostgresDSN, MaxConns: tc.PostgresMaxConns})
		if err != nil {
			return tagBackend{}, fmt.Errorf("open postgres tag store: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		if err := pg.Migrate(); err != nil {
			return tagBackend{}, fmt.Errorf("migrate tag store: %w", err)
		}
		return tagBackend{repo: tagrepo.NewPostgres(pg.Pool()), pinger: pg}, nil
	default:
		return tagBackend{}, fmt.Errorf("unknown tags driver %q", tc.Driver)
	}
}

// RegionRegistry builds the declared region set. An empty list selects the built-in regions.
func RegionRegistry(regions []config.RegionConfig) (*region.Registry, error) {
	if len(regions) == 0 {
		return region.DefaultRegistry(), nil
	}
	rs := make([]region.Region, 0, len(regions))
	for _, rc := range regions {
		r, err := region.New(rc.ID, rc.Label, rc.Locale, strings.ToLower(rc.Country), rc.Aliases...)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", rc.ID, err)
		}
		rs = append(rs, r)
	}
	reg, err := region.NewRegistry(rs)
	if err != nil {
		return nil, fmt.Errorf("build region registry: %w", err)
	}
	return reg, nil
}

// WaitForEngine blocks until the engine answers or the readiness timeout passes.
func (a *App) WaitForEngine(ctx context.Context) error {
	timeout := time.Duration(a.cfg.Engine.ReadinessTimeout) * time.Second
	if err := a.engine.WaitForReady(ctx, timeout); err != nil {
		return fmt.Errorf("engine not ready: %w", err)
	}
	return nil
}

// EnsureIndex creates the company index if missing and pushes the configured synonym groups.
func (a *App) EnsureIndex(ctx context.Context) (bool, error) {
	created, err := a.companies.EnsureIndex(ctx)
	if err != nil {
		return false, err
	}
	if err := a.companies.UpdateSynonyms(ctx, a.cfg.Synonyms); err != nil {
		return created, err
	}
	a.logger.Info("company index ready",
		zap.String("index", a.companies.Index()),
		zap.Bool("created", created),
		zap.Int("synonym_groups", len(a.cfg.Synonyms)),
	)
	return created, nil
}

// Load writes documents to the company index in batches.
func (a *App) Load(ctx context.Context, docs []company.Document, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))
		if err := a.companies.Put(ctx, docs[start:end]); err != nil {
			return fmt.Errorf("load companies %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// Server returns the HTTP API over the wired services.
func (a *App) Server() *chitransport.Server {
	return chitransport.NewServer(a.search, a.tags, a.regions, a.health, a.logger)
}

// Regions returns the declared region set.
func (a *App) Regions() *region.Registry { return a.regions }

// Search returns the search service.
func (a *App) Search() *searchuc.Service { return a.search }

// Tags returns the tag service.
func (a *App) Tags() *taguc.Service { return a.tags }

// Health returns the health service.
func (a *App) Health() *healthuc.Service { return a.health }

// Close releases resources in reverse opening order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
