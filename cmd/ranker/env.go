package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-ranker/internal/analytics"
	"github.com/jonathan/candidate-ranker/internal/artifacts"
	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/db"
	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/pool"
	"github.com/jonathan/candidate-ranker/internal/screening"
)

var errNoSource = errors.New("no candidate source configured: set --candidates-file or DATABASE_URL")

// environment is everything a command needs once configuration is loaded.
type environment struct {
	cfg       *config.Config
	log       *zap.Logger
	store     screening.Store
	screening *screening.Service
	analytics *analytics.Service
	closers   []func()
}

// setup loads configuration, opens the candidate source and builds the services.
func (o *rootOptions) setup(ctx context.Context) (*environment, error) {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.HasSource() {
		return nil, errNoSource
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	env := &environment{cfg: cfg, log: log}

	if err := env.openStore(ctx); err != nil {
		env.Close()
		return nil, err
	}

	links, err := newLinker(ctx, cfg.Artifacts)
	if err != nil {
		env.Close()
		return nil, err
	}

	env.screening = screening.NewService(env.store, links, log)
	env.analytics = analytics.NewService(env.store, log)
	return env, nil
}

// openStore prefers the candidates file over the database.
func (e *environment) openStore(ctx context.Context) error {
	if e.cfg.CandidatesFile != "" {
		file, err := pool.LoadFile(e.cfg.CandidatesFile)
		if err != nil {
			return err
		}
		e.log.Debug("using candidates file", zap.String("path", file.Path()))
		e.store = file
		return nil
	}

	database, err := db.Connect(ctx, e.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	e.log.Debug("connected to database")
	e.store = database
	e.closers = append(e.closers, database.Close)
	return nil
}

// newLinker builds the résumé link rewriter. s3:// references are presigned
// only when an object store is configured.
func newLinker(ctx context.Context, c config.ArtifactsConfig) (screening.Linker, error) {
	cfg := artifacts.Config{
		Bucket:     c.Bucket,
		Region:     c.Region,
		Endpoint:   c.Endpoint,
		AccountID:  c.AccountID,
		AccessKey:  c.AccessKey,
		SecretKey:  c.SecretKey,
		PresignTTL: c.PresignTTL,
	}
	linker, err := artifacts.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure artifact links: %w", err)
	}
	return linker, nil
}

// Close releases the store and flushes the logger.
func (e *environment) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	_ = e.log.Sync()
}
