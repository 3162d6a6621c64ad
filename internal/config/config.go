package config

import (
	"errors"
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config — настройки сервера. Значения берутся из env (с опциональным .env).
type Config struct {
	RunAddress       string        `env:"RUN_ADDRESS"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	AuthSecret       string        `env:"AUTH_SECRET"`
	TelegramBotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	TokenTTL         time.Duration `env:"TOKEN_TTL"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "адрес и порт сервера (host:port)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.TelegramBotToken, "bot-token", cfg.TelegramBotToken, "токен Telegram-бота")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни токена авторизации")

	flag.Parse()

	// Defaults
	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "file:todokeeper.db"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}

	// Секреты обязательны: без них сервер не стартует.
	if cfg.AuthSecret == "" {
		return nil, errors.New("config: AUTH_SECRET is required")
	}
	if cfg.TelegramBotToken == "" {
		return nil, errors.New("config: TELEGRAM_BOT_TOKEN is required")
	}

	return cfg, nil
}
