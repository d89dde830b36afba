package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvGeminiAPIKey, "test-key")
	t.Setenv(EnvDataDir, t.TempDir())
}

func TestLoadWithDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Errorf("LLMTimeout = %v, want 30s", cfg.LLMTimeout)
	}
	if len(cfg.GeminiModels) == 0 {
		t.Error("GeminiModels should default to a non-empty chain")
	}
	if cfg.ArchiveEnabled() {
		t.Error("archive should be disabled without credentials")
	}
}

func TestLoadFailsWithoutAnyAPIKey(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")
	t.Setenv(EnvGroqAPIKey, "")
	t.Setenv(EnvDataDir, t.TempDir())

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when no provider API key is set")
	}
	if !strings.Contains(err.Error(), "completion provider API key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGroqKeyAloneSatisfiesValidation(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")
	t.Setenv(EnvGroqAPIKey, "gsk-test")
	t.Setenv(EnvDataDir, t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
}

func TestModelListParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvGeminiModels, " gemini-2.5-pro , gemini-2.5-flash ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"gemini-2.5-pro", "gemini-2.5-flash"}
	if len(cfg.GeminiModels) != len(want) {
		t.Fatalf("GeminiModels = %v, want %v", cfg.GeminiModels, want)
	}
	for i := range want {
		if cfg.GeminiModels[i] != want[i] {
			t.Errorf("GeminiModels[%d] = %q, want %q", i, cfg.GeminiModels[i], want[i])
		}
	}
}

func TestSQLitePathUnderDataDir(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !strings.HasSuffix(cfg.SQLitePath(), "content.db") {
		t.Errorf("SQLitePath = %q", cfg.SQLitePath())
	}
}

func TestArchiveEnabledRequiresAllFields(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvArchiveEndpoint, "https://s3.example.com")
	t.Setenv(EnvArchiveAccessKey, "id")
	t.Setenv(EnvArchiveSecretKey, "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ArchiveEnabled() {
		t.Error("archive should stay disabled without a bucket")
	}

	t.Setenv(EnvArchiveBucket, "transcripts")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.ArchiveEnabled() {
		t.Error("archive should be enabled with full credentials")
	}
}
