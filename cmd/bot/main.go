package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"researchbot/internal/bot"
	"researchbot/internal/logging"
	"researchbot/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not loaded, using system env")
	}

	cfg, err := bot.LoadConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Production)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Errorw("fatal", "err", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg bot.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	claims, err := newClaimStore(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer claims.Close()

	var (
		b      *bot.Bot
		status bot.StatusReporter
	)
	if cfg.Token != "" {
		b, err = bot.New(cfg, claims, logger)
		if err != nil {
			return err
		}
		status = b
	}

	// The web server comes up first so platform health checks pass while
	// the gateway connects.
	health := bot.NewHealthServer(cfg.Port, status, logger)
	if err := health.Start(); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := health.Shutdown(shutdownCtx); err != nil {
			logger.Warnw("webserver shutdown", "err", err)
		}
	}()

	if b == nil {
		logger.Warn("DISCORD_TOKEN is not set, starting only the webserver. The bot will not run.")
		<-ctx.Done()
		return nil
	}

	if err := b.Start(); err != nil {
		return err
	}
	logger.Info("Bot running. Ctrl+C to stop.")

	<-ctx.Done()
	logger.Info("shutting down")
	if err := b.Close(); err != nil {
		logger.Warnw("closing discord session", "err", err)
	}
	return nil
}

func newClaimStore(ctx context.Context, redisURL string, logger *zap.SugaredLogger) (store.Claimer, error) {
	if redisURL == "" {
		return store.NewMemory(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	r, err := store.NewRedis(connectCtx, redisURL)
	if err != nil {
		return nil, err
	}
	logger.Info("using redis claim store")
	return r, nil
}
