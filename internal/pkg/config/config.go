package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Server    ServerConfig    `yaml:"server"`
	Importer  ImporterConfig  `yaml:"importer"`
	Predictor PredictorConfig `yaml:"predictor"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	AlertTTL time.Duration `yaml:"alert_ttl"` // cooldown for duplicate prediction alerts
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type ImporterConfig struct {
	AllowDuplicates bool `yaml:"allow_duplicates"` // skip the natural-key duplicate check
}

type PredictorConfig struct {
	Interval   time.Duration    `yaml:"interval"`
	BatchLimit int              `yaml:"batch_limit"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	DeepSeek   DeepSeekConfig   `yaml:"deepseek"`
	Telegram   TelegramConfig   `yaml:"telegram"`
}

type ThresholdsConfig struct {
	Baseline      float64 `yaml:"baseline"`       // max |prob_a - prob_b| still called a draw (default 0.15)
	Value         float64 `yaml:"value"`          // min prob-over-implied edge for a value pick (default 0.10)
	BalancedProb  float64 `yaml:"balanced_prob"`  // min win probability in the combined rule (default 0.45)
	BalancedValue float64 `yaml:"balanced_value"` // min edge over implied in the combined rule (default 0.05)
}

type DeepSeekConfig struct {
	Enabled bool          `yaml:"enabled"`
	APIKey  string        `yaml:"api_key"`
	APIURL  string        `yaml:"api_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
