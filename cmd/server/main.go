package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farawebdata/backend/internal/config"
	"github.com/farawebdata/backend/internal/handler"
	"github.com/farawebdata/backend/internal/logging"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/service"
	"github.com/farawebdata/backend/internal/validation"
)

const (
	redisConnectAttempts = 3
	redisConnectInterval = 2 * time.Second
	rateLimitKeyPrefix   = "formapi:ratelimit:"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("failed to load config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	gw, err := repository.Open(ctx, cfg.Database.Options())
	if err != nil {
		logging.Fatal("failed to connect to database", "driver", cfg.Database.Driver, "error", err)
	}
	defer gw.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, gw, slog.Default()); err != nil {
			logging.Fatal("failed to apply migrations", "error", err)
		}
	}

	vocab := validation.DefaultVocabulary()
	if len(cfg.PreferenceTags) > 0 {
		vocab, err = validation.NewVocabulary(cfg.PreferenceTags...)
		if err != nil {
			logging.Fatal("invalid PREFERENCE_TAGS", "error", err)
		}
	}
	v := validation.New(vocab)

	store, closeStore, err := newRateLimitStore(ctx, cfg.RateLimit)
	if err != nil {
		logging.Fatal("failed to connect to redis", "error", err)
	}
	defer closeStore()

	router := handler.NewRouter(handler.Deps{
		DB:             gw,
		Submissions:    service.NewSubmissionService(gw, v),
		Contacts:       service.NewContactService(gw, v),
		RateLimiter:    handler.NewRateLimiter(store, cfg.RateLimit.Max, cfg.RateLimit.Window, cfg.RateLimit.TrustedProxyCount),
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        cfg.MetricsEnabled,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newRateLimitStore returns the Redis store when REDIS_URL is set and the
// in-process store otherwise. The returned func releases it.
func newRateLimitStore(ctx context.Context, cfg config.RateLimitConfig) (handler.RateLimitStore, func(), error) {
	if cfg.RedisURL == "" {
		store := handler.NewMemoryStore(time.Minute)
		return store, store.Close, nil
	}

	client, err := connectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("rate limiting through redis")
	return handler.NewRedisStore(client, rateLimitKeyPrefix), func() { _ = client.Close() }, nil
}

// connectRedis parses url and pings the server, retrying a few times.
func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= redisConnectAttempts; attempt++ {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()
		slog.Warn("redis not ready", "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return nil, errors.Join(lastErr, ctx.Err())
		case <-time.After(redisConnectInterval):
		}
	}
	return nil, lastErr
}
