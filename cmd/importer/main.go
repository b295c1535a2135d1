package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/avolkov/footpred/internal/competitions"
	"github.com/avolkov/footpred/internal/importer"
	"github.com/avolkov/footpred/internal/pkg/config"
	"github.com/avolkov/footpred/internal/pkg/logging"
	"github.com/avolkov/footpred/internal/pkg/storage"
	"github.com/avolkov/footpred/internal/server"
	"github.com/avolkov/footpred/internal/textparse"
)

const defaultConfigPath = "configs/production.yaml"

type cliConfig struct {
	configPath string
	file       string
	stdin      bool
}

func main() {
	if err := run(); err != nil {
		slog.Error("Importer failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	appConfig, err := config.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.SetupLogger(&appConfig.Logging, "importer")
	slog.Info("Config loaded", "path", cfg.configPath)

	store, err := openStore(appConfig)
	if err != nil {
		return err
	}
	defer store.Close()

	parser := textparse.New(competitions.Default())
	imp := importer.New(parser, store, !appConfig.Importer.AllowDuplicates)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(ctx, cancel)

	// One-shot mode: read text from a file or stdin, import, print the tally.
	if cfg.file != "" || cfg.stdin {
		text, err := readInput(cfg)
		if err != nil {
			return err
		}
		res := imp.Import(ctx, text)
		return printResult(res)
	}

	port := appConfig.Server.Port
	if port <= 0 {
		return fmt.Errorf("server.port must be specified in config")
	}
	srv := server.New(imp, store)
	return srv.Run(ctx, fmt.Sprintf(":%d", port), appConfig.Server.ReadHeaderTimeout)
}

func parseFlags() cliConfig {
	var cfg cliConfig

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&cfg.file, "file", "", "Import board text from this file and exit")
	flag.BoolVar(&cfg.stdin, "stdin", false, "Import board text from stdin and exit")
	flag.Parse()
	return cfg
}

func openStore(appConfig *config.Config) (storage.Store, error) {
	if appConfig.Postgres.DSN == "" {
		slog.Warn("postgres.dsn not set, using in-memory store; imports will not survive restart")
		return storage.NewMemoryStore(), nil
	}
	store, err := storage.NewPostgresStore(&appConfig.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres store: %w", err)
	}
	return store, nil
}

func readInput(cfg cliConfig) (string, error) {
	if cfg.file != "" {
		data, err := os.ReadFile(cfg.file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printResult(res importer.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping importer...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
