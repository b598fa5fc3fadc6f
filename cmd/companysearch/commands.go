package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companysearch/internal/app"
	"github.com/kailas-cloud/companysearch/internal/config"
	"github.com/kailas-cloud/companysearch/internal/metrics"
	chiTransport "github.com/kailas-cloud/companysearch/internal/transport/chi"
	"github.com/kailas-cloud/companysearch/internal/version"
)

func serveCommand(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting companysearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.Strings("engine_addrs", cfg.Engine.Addrs),
		zap.String("tags_driver", cfg.Tags.Driver),
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.WaitForEngine(ctx); err != nil {
		return err
	}
	logger.Info("Connected to search engine")

	// An embedded bleve index only exists once opened by this process.
	if cfg.Engine.CreateIndex || cfg.Engine.Driver == config.EngineBleve {
		if _, err := a.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	a.Server().Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	logger.Info("Server stopped gracefully")
	return nil
}

func ensureIndexCommand(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.WaitForEngine(c.Context); err != nil {
		return err
	}
	created, err := a.EnsureIndex(c.Context)
	if err != nil {
		return err
	}
	state := "exists"
	if created {
		state = "created"
	}
	fmt.Fprintf(c.App.Writer, "index %s %s, %d synonym groups\n", cfg.Engine.Index, state, len(cfg.Synonyms))
	return nil
}

func loadCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: companysearch index load <file.jsonl>", 2)
	}
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(filepath.Clean(c.Args().First()))
	if err != nil {
		return fmt.Errorf("open companies file: %w", err)
	}
	defer f.Close()

	docs, err := app.DecodeCompanies(f)
	if err != nil {
		return err
	}

	a, err := app.New(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.WaitForEngine(c.Context); err != nil {
		return err
	}
	if _, err := a.EnsureIndex(c.Context); err != nil {
		return err
	}
	if err := a.Load(c.Context, docs, c.Int("batch-size")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "loaded %d companies into %s\n", len(docs), cfg.Engine.Index)
	return nil
}

func regionsCommand(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	reg, err := app.RegionRegistry(cfg.Regions)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tLOCALE\tCOUNTRY")
	for _, r := range reg.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID(), r.Label(), r.Locale(), r.Country())
	}
	return tw.Flush()
}
