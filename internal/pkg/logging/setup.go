package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/avolkov/footpred/internal/pkg/config"
)

// SetupLogger installs the process-wide logger: text handler on stdout at the
// configured level, tagged with the service name.
func SetupLogger(cfg *config.LoggingConfig, serviceName string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	logger := slog.New(handler).With("service", serviceName)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
