// cmd/trini-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ibanezbetes/trinity-sub010/internal/ai"
	"github.com/ibanezbetes/trinity-sub010/internal/catalog"
	"github.com/ibanezbetes/trinity-sub010/internal/common/config"
	"github.com/ibanezbetes/trinity-sub010/internal/common/database"
	"github.com/ibanezbetes/trinity-sub010/internal/common/logger"
	"github.com/ibanezbetes/trinity-sub010/internal/common/observability"
	"github.com/ibanezbetes/trinity-sub010/internal/fallback"
	"github.com/ibanezbetes/trinity-sub010/internal/ratelimit"
	"github.com/ibanezbetes/trinity-sub010/internal/recommend"
	"github.com/ibanezbetes/trinity-sub010/internal/server"
	"github.com/ibanezbetes/trinity-sub010/internal/session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting trini-server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("trini-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Pipeline ---
	modelClient, err := ai.NewClient(cfg.Model, log)
	if err != nil {
		zapLog.Fatal("model client init failed", zap.Error(err))
	}

	catalogClient, err := catalog.NewClient(cfg.Catalog, log)
	if err != nil {
		zapLog.Fatal("catalog client init failed", zap.Error(err))
	}

	fallbackEngine := fallback.NewEngine(log)
	verifier := catalog.NewVerifier(catalogClient, fallbackEngine, log)
	decoder := ai.NewDecoder(log)

	orchestrator := recommend.NewOrchestrator(modelClient, decoder, verifier, fallbackEngine, obs, log)

	sessions := session.NewStore(redis.Client, cfg.Session, log)
	limiter := ratelimit.NewLimiter(redis.Client, cfg.RateLimit, log)

	handler := server.NewHandler(orchestrator, sessions, limiter, redis, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during server shutdown", zap.Error(err))
	}

	zapLog.Info("trini-server stopped gracefully")
}
