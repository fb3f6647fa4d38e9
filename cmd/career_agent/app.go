package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/bundle"
	"github.com/jonathan/career-compass/internal/cache"
	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/db"
	"github.com/jonathan/career-compass/internal/logging"
	"github.com/jonathan/career-compass/internal/metrics"
	"github.com/jonathan/career-compass/internal/observability"
	"github.com/jonathan/career-compass/internal/pipeline"
)

// app is the per-invocation wiring of config, logger, metrics and lazily opened resources
type app struct {
	cmd     *cobra.Command
	opts    *rootOptions
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Recorder

	db      *db.DB
	store   cache.Store
	closers []func()
}

// withApp builds an app for cmd, runs fn and releases everything it opened. Metrics are
// written even when fn fails.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) (err error) {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(cmd.Context(), a)
}

func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.debug {
		cfg.Log.Debug = true
	}
	if opts.jsonLog {
		cfg.Log.JSON = true
	}

	logger, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return &app{cmd: cmd, opts: opts, cfg: cfg, logger: logger, metrics: metrics.New()}, nil
}

func (a *app) close() error {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil

	var err error
	if a.opts.metricsOut != "" {
		if err = a.metrics.WriteTextfile(a.opts.metricsOut); err != nil {
			err = fmt.Errorf("failed to write metrics: %w", err)
		} else {
			a.logger.Debug("metrics written", zap.String("path", a.opts.metricsOut))
		}
	}
	_ = a.logger.Sync()
	return err
}

// database opens the configured Postgres database once per invocation.
func (a *app) database(ctx context.Context) (*db.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.cfg.Catalog.DatabaseURL == "" {
		return nil, errors.New("a database is required: set catalog.database_url or CAREER_CATALOG_DATABASE_URL")
	}
	database, err := db.Connect(ctx, a.cfg.Catalog.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, database.Close)
	if err := database.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	a.db = database
	return database, nil
}

// catalogSource picks the catalog file, the database or the embedded sample, in that order.
func (a *app) catalogSource(ctx context.Context) (catalog.Source, error) {
	switch {
	case a.cfg.Catalog.Path != "":
		return catalog.FileSource{Path: a.cfg.Catalog.Path}, nil
	case a.cfg.Catalog.DatabaseURL != "":
		database, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return db.CatalogSource{DB: database}, nil
	default:
		return catalog.EmbeddedSource{}, nil
	}
}

// cacheStore returns the configured byte store, or nil when caching is disabled.
func (a *app) cacheStore(ctx context.Context) (cache.Store, error) {
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}
	if a.store != nil {
		return a.store, nil
	}
	switch a.cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := cache.NewRedisStore(ctx, cache.RedisOptions{
			Addr:      a.cfg.Cache.RedisAddr,
			Password:  a.cfg.Cache.RedisPassword,
			DB:        a.cfg.Cache.RedisDB,
			KeyPrefix: a.cfg.Cache.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = store.Close() })
		a.store = store
	default:
		a.store = cache.NewMemoryStore()
	}
	a.logger.Debug("cache enabled", zap.String("backend", a.cfg.Cache.Backend))
	return a.store, nil
}

// analyzer fits the bundle and returns an Analyzer wired to the cache and metrics.
func (a *app) analyzer(ctx context.Context) (*pipeline.Analyzer, error) {
	src, err := a.catalogSource(ctx)
	if err != nil {
		return nil, err
	}
	b, err := bundle.Fit(ctx, a.cfg, src, a.logger)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Metrics: a.metrics,
		Logger:  a.logger,
		OnProgress: func(ev pipeline.ProgressEvent) {
			a.logger.Debug(ev.Message, zap.String("step", ev.Step))
		},
	}
	store, err := a.cacheStore(ctx)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts.Cache = cache.NewMatchCache(store, a.cfg.Cache.TTL, a.logger)
	}
	return pipeline.New(b, opts)
}

func (a *app) stdout() io.Writer { return a.cmd.OutOrStdout() }

// printer writes human-readable summaries to stderr in verbose mode, and nowhere otherwise.
func (a *app) printer() *observability.Printer {
	if !a.opts.verbose {
		return nil
	}
	return observability.NewPrinter(a.cmd.ErrOrStderr())
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func (a *app) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = a.stdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Info("output written", zap.String("path", path))
	return nil
}
