package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	BotToken      string        `env:"BOT_TOKEN,required"`
	RelayBotToken string        `env:"RELAY_BOT_TOKEN,required"`
	RelayChatID   string        `env:"RELAY_CHAT_ID,required"`
	RelayTimeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"15s"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ExpectedPayee string        `env:"EXPECTED_PAYEE" envDefault:"Roeurn Bora"`
	TesseractLang string        `env:"TESSERACT_LANG" envDefault:"eng"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate required fields
	if cfg.ExpectedPayee == "" {
		return nil, fmt.Errorf("expected payee name must not be empty")
	}

	return &cfg, nil
}
