package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/footpred/internal/notify"
	"github.com/avolkov/footpred/internal/pkg/config"
	"github.com/avolkov/footpred/internal/pkg/logging"
	"github.com/avolkov/footpred/internal/pkg/storage"
	"github.com/avolkov/footpred/internal/predictor"
)

const defaultConfigPath = "configs/production.yaml"

type cliConfig struct {
	configPath string
	runFor     time.Duration
	once       bool
}

func main() {
	if err := run(); err != nil {
		slog.Error("Predictor failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	appConfig, err := config.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.SetupLogger(&appConfig.Logging, "predictor")
	slog.Info("Config loaded", "path", cfg.configPath)

	if appConfig.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn must be specified in config")
	}
	store, err := storage.NewPostgresStore(&appConfig.Postgres)
	if err != nil {
		return fmt.Errorf("failed to open postgres store: %w", err)
	}
	defer store.Close()

	engine := predictor.NewEngine(&appConfig.Predictor.Thresholds)

	opts := predictor.RunnerOptions{
		Interval:   appConfig.Predictor.Interval,
		BatchLimit: appConfig.Predictor.BatchLimit,
		AlertTTL:   appConfig.Redis.AlertTTL,
	}

	if appConfig.Predictor.DeepSeek.Enabled {
		if appConfig.Predictor.DeepSeek.APIKey == "" {
			slog.Warn("deepseek.enabled is set but api_key is empty, cross-checking disabled")
		} else {
			opts.DeepSeek = predictor.NewDeepSeekClient(&appConfig.Predictor.DeepSeek)
			slog.Info("DeepSeek cross-checking enabled")
		}
	}

	if appConfig.Predictor.Telegram.BotToken != "" {
		opts.Notifier = notify.NewTelegramNotifier(
			appConfig.Predictor.Telegram.BotToken,
			appConfig.Predictor.Telegram.ChatID,
		)
		if opts.Notifier == nil {
			slog.Warn("Telegram notifier unavailable, alerts disabled")
		}
	}

	if appConfig.Redis.Addr != "" {
		cache, err := storage.NewPredictionCache(
			appConfig.Redis.Addr, appConfig.Redis.Password, appConfig.Redis.DB)
		if err != nil {
			slog.Warn("Redis unavailable, alert cooldowns disabled", "error", err)
		} else {
			opts.Cache = cache
			defer cache.Close()
		}
	}

	runner := predictor.NewRunner(store, engine, opts)

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	if cfg.once {
		return runner.RunOnce(ctx)
	}
	return runner.Start(ctx)
}

func parseFlags() cliConfig {
	var cfg cliConfig

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration (e.g. 10s, 1m). 0 = run until SIGINT/SIGTERM")
	flag.BoolVar(&cfg.once, "once", false, "Score one batch and exit")
	flag.Parse()
	return cfg
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping predictor...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
