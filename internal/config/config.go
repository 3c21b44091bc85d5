package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Token   string `env:"DISCORD_TOKEN"`
	GuildID string `env:"DISCORD_GUILD_ID"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataDir        string `env:"DATA_DIR" envDefault:"."`
	DatabaseURL    string `env:"DATABASE_URL"`

	XPCooldown            time.Duration `env:"XP_COOLDOWN" envDefault:"30s"`
	DivaCooldown          time.Duration `env:"DIVA_COOLDOWN" envDefault:"20s"`
	CooldownPruneInterval time.Duration `env:"COOLDOWN_PRUNE_INTERVAL" envDefault:"5m"`
	EventQueueSize        int           `env:"EVENT_QUEUE_SIZE" envDefault:"256"`

	// MetricsAddr is where /metrics is served; empty disables the server.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":2112"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if token := readSecret("discord_token"); token != "" {
		cfg.Token = token
	}
	if dbURL := readSecret("database_url"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
