package companysearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/companysearch/internal/app"
	"github.com/kailas-cloud/companysearch/internal/config"
	healthuc "github.com/kailas-cloud/companysearch/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the companysearch SDK entry point. It runs the full search
// pipeline in-process over the configured engine and tag store.
type Client struct {
	app *app.App
}

// New opens the engine and tag store, waits for the engine and ensures the
// company index. Without options it runs on an in-memory bleve index with
// in-memory tags.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{
		cfg: config.Config{
			Engine: config.EngineConfig{
				Driver:           config.EngineBleve,
				ReadinessTimeout: int(defaultReadinessTimeout / time.Second),
				CreateIndex:      true,
			},
		},
	}
	for _, o := range opts {
		o(cc)
	}
	cc.cfg.ApplyDefaults()
	if err := cc.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("companysearch: %w", err)
	}

	a, err := app.New(ctx, cc.cfg, cc.logger)
	if err != nil {
		return nil, fmt.Errorf("companysearch: %w", err)
	}
	if err := a.WaitForEngine(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("companysearch: %w", err)
	}
	if cc.cfg.Engine.CreateIndex {
		if _, err := a.EnsureIndex(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("companysearch: ensure index: %w", err)
		}
	}
	return &Client{app: a}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.app != nil {
		c.app.Close()
	}
}

// Ping checks every backing component and fails unless all of them answer.
func (c *Client) Ping(ctx context.Context) error {
	h := c.app.Health()
	rep := h.Check(ctx)
	if rep.Status == healthuc.Healthy {
		return nil
	}
	for _, name := range h.Names() {
		if res := rep.Checks[name]; res != healthuc.CheckOK {
			return fmt.Errorf("ping: %s: %s", name, res)
		}
	}
	return fmt.Errorf("ping: %s", rep.Status)
}

// Load indexes companies in batches of batchSize (0 selects the default).
func (c *Client) Load(ctx context.Context, companies []Company, batchSize int) error {
	docs, err := toDocuments(companies)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := c.app.Load(ctx, docs, batchSize); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}

// Search runs one search request through the pipeline.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	r, err := toRequest(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	res, err := c.app.Search().Search(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResult(res), nil
}

// Query starts a fluent search for the given free text.
func (c *Client) Query(text string) *QueryBuilder {
	return &QueryBuilder{client: c, req: SearchRequest{Query: text}}
}

// Regions lists the declared regions in declaration order.
func (c *Client) Regions() []Region {
	return fromRegions(c.app.Regions().All())
}

// Tags returns the saved-tag service for one user.
func (c *Client) Tags(userID string) *TagService {
	return &TagService{userID: userID, svc: c.app.Tags()}
}
