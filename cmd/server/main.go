package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"apple-inventory/internal/api"
	"apple-inventory/internal/collection"
	"apple-inventory/internal/config"
	"apple-inventory/internal/kvstore"
	"apple-inventory/internal/syncer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log := newLogger(cfg)

	kv, watcher, err := buildBackend(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store backend")
	}

	adapter := kvstore.NewAdapter(kv)
	coll := collection.New(adapter, log)

	report, err := coll.LoadAll()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hydrate collection")
	}
	log.Info().
		Int("loaded", report.Loaded).
		Int("skipped", report.Skipped).
		Str("backend", cfg.StoreBackend).
		Msg("collection hydrated")

	firstLaunch, err := adapter.FirstLaunch()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read first-launch flag")
	}
	if firstLaunch {
		log.Info().Msg("first launch")
		if err := adapter.MarkLaunched(); err != nil {
			log.Warn().Err(err).Msg("failed to clear first-launch flag")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watcher != nil {
		s := syncer.New(coll, watcher, log)
		go s.Run(ctx)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.SetupRoutes(r, coll, adapter, cfg.CORSOrigins, log)

	addr := cfg.Host + ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

// buildBackend returns the configured key-value store and, when the
// backend supports remote-change notifications, its watcher.
func buildBackend(cfg *config.Config, log zerolog.Logger) (kvstore.Store, kvstore.Watcher, error) {
	switch cfg.StoreBackend {
	case "memory":
		return kvstore.NewMemory(), nil, nil
	case "remote":
		remote := kvstore.NewRemote(cfg.RemoteKVURL, cfg.SyncPollInterval, log)
		return remote, remote, nil
	default:
		s, err := kvstore.NewSQLite(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
}
