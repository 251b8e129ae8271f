package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("RELAY_BOT_TOKEN", "456:def")
	t.Setenv("RELAY_CHAT_ID", "1732455712")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RelayTimeout != 15*time.Second {
		t.Errorf("Got relay timeout %v, want 15s", cfg.RelayTimeout)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Got session TTL %v, want 24h", cfg.SessionTTL)
	}
	if cfg.ExpectedPayee != "Roeurn Bora" {
		t.Errorf("Got expected payee %q, want Roeurn Bora", cfg.ExpectedPayee)
	}
	if cfg.TesseractLang != "eng" {
		t.Errorf("Got tesseract lang %q, want eng", cfg.TesseractLang)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("Redis address should default to empty, got %q", cfg.RedisAddr)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// t.Setenv registers the restore; unset leaves the var absent for the
	// duration of the test so the required check actually fires.
	for _, key := range []string{"BOT_TOKEN", "RELAY_BOT_TOKEN", "RELAY_CHAT_ID"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error when required vars are missing, got nil")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("RELAY_BOT_TOKEN", "456:def")
	t.Setenv("RELAY_CHAT_ID", "1732455712")
	t.Setenv("EXPECTED_PAYEE", "Jane Vendor")
	t.Setenv("RELAY_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ExpectedPayee != "Jane Vendor" {
		t.Errorf("Got expected payee %q, want Jane Vendor", cfg.ExpectedPayee)
	}
	if cfg.RelayTimeout != 5*time.Second {
		t.Errorf("Got relay timeout %v, want 5s", cfg.RelayTimeout)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Got redis addr %q, want localhost:6379", cfg.RedisAddr)
	}
}
