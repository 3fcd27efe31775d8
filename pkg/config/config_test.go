package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Redis.CacheTTL != 60*time.Second {
		t.Errorf("Redis.CacheTTL = %v, want 60s", cfg.Redis.CacheTTL)
	}
	if cfg.Kafka.Topics.DocumentIndex != "document-index" {
		t.Errorf("Kafka.Topics.DocumentIndex = %q", cfg.Kafka.Topics.DocumentIndex)
	}
	if !cfg.History.Enabled || cfg.History.RecentLimit != 50 {
		t.Errorf("History = %+v, want enabled with recentLimit 50", cfg.History)
	}
	if cfg.Engine.StopWords != "" {
		t.Errorf("Engine.StopWords = %q, want empty", cfg.Engine.StopWords)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
server:
  port: 9999
engine:
  stopWords: "a an the"
postgres:
  host: db.internal
  password: secret
redis:
  cacheTTL: 5m
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Engine.StopWords != "a an the" {
		t.Errorf("Engine.StopWords = %q", cfg.Engine.StopWords)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("Postgres.Host = %q", cfg.Postgres.Host)
	}
	if cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("Redis.CacheTTL = %v, want 5m", cfg.Redis.CacheTTL)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want default 5432", cfg.Postgres.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SS_SERVER_PORT", "7070")
	t.Setenv("SS_ENGINE_STOP_WORDS", "и в на")
	t.Setenv("SS_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("SS_REDIS_ADDR", "redis:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Engine.StopWords != "и в на" {
		t.Errorf("Engine.StopWords = %q", cfg.Engine.StopWords)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("Kafka.Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
}

func TestEnvOverridesIgnoreBadNumbers(t *testing.T) {
	t.Setenv("SS_SERVER_PORT", "not-a-port")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "searchserver",
		User:     "app",
		Password: "pw",
		SSLMode:  "disable",
	}
	dsn := p.DSN()
	for _, part := range []string{"host=localhost", "port=5432", "dbname=searchserver", "user=app", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN %q missing %q", dsn, part)
		}
	}
}
