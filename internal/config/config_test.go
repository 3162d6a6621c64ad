package config

import (
	"flag"
	"os"
	"testing"
	"time"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TOKEN_TTL", "")

	resetFlagSet(t)
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != "localhost:8080" {
		t.Fatalf("RunAddress default expected 'localhost:8080', got %q", cfg.RunAddress)
	}
	if cfg.DatabaseDSN != "file:todokeeper.db" {
		t.Fatalf("DatabaseDSN default expected 'file:todokeeper.db', got %q", cfg.DatabaseDSN)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL default expected 1h, got %v", cfg.TokenTTL)
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "0.0.0.0:9090")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost/todo")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TOKEN_TTL", "30m")

	resetFlagSet(t)
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != "0.0.0.0:9090" {
		t.Fatalf("RunAddress expected from env, got %q", cfg.RunAddress)
	}
	if cfg.DatabaseDSN != "postgres://u:p@localhost/todo" {
		t.Fatalf("DatabaseDSN expected from env, got %q", cfg.DatabaseDSN)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("TokenTTL expected 30m, got %v", cfg.TokenTTL)
	}
}

// Отсутствие секретов — ошибка старта, а не молчаливый дефолт.
func TestNewConfig_MissingSecretsFail(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	resetFlagSet(t)
	if _, err := NewConfig(); err == nil {
		t.Fatalf("expected error when AUTH_SECRET is empty")
	}

	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	resetFlagSet(t)
	if _, err := NewConfig(); err == nil {
		t.Fatalf("expected error when TELEGRAM_BOT_TOKEN is empty")
	}
}
