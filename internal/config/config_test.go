package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Duel.QuestionCount != 15 {
		t.Errorf("default question count = %d", cfg.Duel.QuestionCount)
	}
	if cfg.Duel.TTL != 30*time.Minute {
		t.Errorf("default duel TTL = %v", cfg.Duel.TTL)
	}
	if cfg.Trivia.BaseURL == "" {
		t.Error("default trivia base URL is empty")
	}
	if !cfg.Redis.Enabled {
		t.Error("redis cache should default to enabled")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("DUEL_QUESTION_COUNT", "10")
	t.Setenv("DUEL_TTL", "1h")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("TRIVIA_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Duel.QuestionCount != 10 {
		t.Errorf("question count = %d", cfg.Duel.QuestionCount)
	}
	if cfg.Duel.TTL != time.Hour {
		t.Errorf("duel TTL = %v", cfg.Duel.TTL)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled")
	}
	if cfg.Trivia.Timeout != 3*time.Second {
		t.Errorf("trivia timeout = %v", cfg.Trivia.Timeout)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("DUEL_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("malformed port should fall back to default, got %d", cfg.Server.Port)
	}
	if cfg.Duel.TTL != 30*time.Minute {
		t.Errorf("malformed TTL should fall back to default, got %v", cfg.Duel.TTL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }},
		{"missing trivia url", func(c *Config) { c.Trivia.BaseURL = "" }},
		{"zero questions", func(c *Config) { c.Duel.QuestionCount = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
