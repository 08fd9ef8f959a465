package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/pikacalc/internal/domain/calculator"
	"github.com/yanqian/pikacalc/internal/domain/roster"
	"github.com/yanqian/pikacalc/internal/domain/session"
	"github.com/yanqian/pikacalc/internal/infra/config"
	"github.com/yanqian/pikacalc/internal/infra/pokeapi"
	"github.com/yanqian/pikacalc/internal/infra/rostercache"
)

func provideRosterConfig(cfg *config.Config) roster.Config {
	return roster.Config{
		CacheKey:     cfg.Cache.Key,
		InitialLimit: cfg.Roster.InitialLimit,
	}
}

func provideCalculatorConfig(cfg *config.Config) calculator.Config {
	return calculator.Config{DefaultLevel: cfg.Session.DefaultLevel}
}

func providePokeAPIClient(cfg *config.Config) *pokeapi.Client {
	return pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout)
}

func provideSessionStore(cfg *config.Config) *session.Store {
	return session.New(cfg.Session.DefaultLevel)
}

// provideRosterStore opens the configured cache backend. A remote backend that cannot be
// reached degrades to the file store so the calculator keeps working offline.
func provideRosterStore(cfg *config.Config, logger *slog.Logger) (roster.Store, func()) {
	noop := func() {}
	switch cfg.Cache.Backend {
	case config.BackendMemory:
		logger.Info("roster cache in memory only")
		return rostercache.NewMemoryStore(), noop
	case config.BackendValkey:
		if store, cleanup, ok := openValkeyStore(cfg, logger); ok {
			return store, cleanup
		}
	case config.BackendSQLite:
		store, err := rostercache.OpenSQLite(cfg.Cache.SQLite.Path)
		if err != nil {
			logger.Error("failed to open sqlite cache, falling back to file store", "path", cfg.Cache.SQLite.Path, "error", err)
			break
		}
		logger.Info("roster sqlite cache enabled", "path", cfg.Cache.SQLite.Path)
		return store, func() { _ = store.Close() }
	case config.BackendPostgres:
		if store, cleanup, ok := openPostgresStore(cfg, logger); ok {
			return store, cleanup
		}
	case config.BackendS3:
		if store, ok := openObjectStore(cfg, logger); ok {
			return store, noop
		}
	}
	return fileStore(cfg, logger), noop
}

func fileStore(cfg *config.Config, logger *slog.Logger) roster.Store {
	dir := strings.TrimSpace(cfg.Cache.File.Dir)
	if dir == "" {
		dir = rostercache.DefaultDir()
	}
	store, err := rostercache.NewFileStore(dir)
	if err != nil {
		logger.Error("failed to prepare file cache, falling back to memory store", "dir", dir, "error", err)
		return rostercache.NewMemoryStore()
	}
	logger.Info("roster file cache enabled", "dir", dir)
	return store
}

func openValkeyStore(cfg *config.Config, logger *slog.Logger) (roster.Store, func(), bool) {
	opt, err := buildValkeyOptions(cfg.Cache.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to file store", "error", err)
		return nil, nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to file store", "error", err)
		return nil, nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to file store", "error", err)
		client.Close()
		return nil, nil, false
	}
	logger.Info("roster valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
	return rostercache.NewValkeyStore(client, "pikacalc"), client.Close, true
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func openPostgresStore(cfg *config.Config, logger *slog.Logger) (roster.Store, func(), bool) {
	dsn := strings.TrimSpace(cfg.Cache.Postgres.DSN)
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, falling back to file store", "error", err)
		return nil, nil, false
	}
	if cfg.Cache.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Cache.Postgres.MaxConns
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rostercache.RunMigrations(ctx, dsn); err != nil {
		logger.Error("postgres migrations failed, falling back to file store", "error", err)
		return nil, nil, false
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, falling back to file store", "error", err)
		return nil, nil, false
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, falling back to file store", "error", err)
		pool.Close()
		return nil, nil, false
	}
	logger.Info("roster postgres cache enabled")
	return rostercache.NewPostgresStore(pool), pool.Close, true
}

func openObjectStore(cfg *config.Config, logger *slog.Logger) (roster.Store, bool) {
	s3 := cfg.Cache.S3
	store, err := rostercache.NewObjectStore(s3.Endpoint, s3.AccessKey, s3.SecretKey, s3.Bucket, s3.Region, logger)
	if err != nil {
		logger.Error("failed to create object storage client, falling back to file store", "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		logger.Error("object storage bucket unavailable, falling back to file store", "bucket", s3.Bucket, "error", err)
		return nil, false
	}
	logger.Info("roster object cache enabled", "endpoint", s3.Endpoint, "bucket", s3.Bucket)
	return store, true
}
