package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-bank/internal/config"
	"github.com/gokatarajesh/quiz-bank/internal/db"
	"github.com/gokatarajesh/quiz-bank/internal/db/repository"
	"github.com/gokatarajesh/quiz-bank/internal/logging"
	"github.com/gokatarajesh/quiz-bank/internal/round"
	"github.com/gokatarajesh/quiz-bank/internal/server"
)

// Application aggregates shared infrastructure (store, session cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store db.Store
	redis *redis.Client
	http  *http.Server
}

// New bootstraps the logger, question store, session store and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("driver", cfg.Store.Driver).Msg("starting application bootstrap")

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var (
		redisClient *redis.Client
		sessions    round.SessionStore
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = store.Close()
			_ = redisClient.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		sessions = round.NewRedisSessionStore(redisClient, cfg.Round.SessionTTL)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; round sessions kept in memory")
		sessions = round.NewMemorySessionStore(cfg.Round.SessionTTL)
	}

	questionRepo := repository.NewQuestionRepository(store)
	roundSvc := round.NewService(questionRepo, sessions, round.ServiceOptions{
		CaseSensitive: cfg.Grading.CaseSensitive,
	}, logger)

	if n, err := questionRepo.Count(ctx); err != nil {
		logger.Warn().Err(err).Msg("question count failed")
	} else if n == 0 {
		logger.Warn().Msg("question store is empty; run builddb before starting rounds")
	} else {
		logger.Info().Int("questions", n).Msg("question store ready")
	}

	return &Application{
		cfg:    cfg,
		logger: logger,
		store:  store,
		redis:  redisClient,
		http:   server.NewHTTPServer(cfg, logger, healthChecks(store, redisClient), roundSvc),
	}, nil
}

// OpenStore opens the configured question store backend.
func OpenStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (db.Store, error) {
	store, err := db.Open(ctx, db.Options{
		Driver:      db.Driver(cfg.Store.Driver),
		SQLitePath:  cfg.Store.Path,
		PostgresDSN: cfg.Store.Postgres.DSN(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open question store: %w", err)
	}
	return store, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.close()

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("store shutdown error")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

func healthChecks(store db.Store, redisClient *redis.Client) map[string]server.Pinger {
	checks := map[string]server.Pinger{"store": store}
	if redisClient != nil {
		checks["redis"] = server.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	return checks
}
