package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "CALENDAR_TZ", "MONGO_URI", "KAFKA_BROKERS", "IDEMP_TTL", "RETRY_BACKOFF", "OUTBOX_POLL_INTERVAL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "dev" || cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.CalendarTZ != time.UTC {
		t.Errorf("expected UTC, got %v", cfg.CalendarTZ)
	}
	if cfg.UseMongo() || cfg.UseKafka() {
		t.Error("expected in-memory mode without MONGO_URI and KAFKA_BROKERS")
	}
	want := []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}
	if !reflect.DeepEqual(cfg.RetryBackoff, want) {
		t.Errorf("backoff = %v, want %v", cfg.RetryBackoff, want)
	}
	if cfg.IdempotencyTTL != 168*time.Hour {
		t.Errorf("ttl = %v", cfg.IdempotencyTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CALENDAR_TZ", "Europe/Lisbon")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("RETRY_BACKOFF", "2s, 10s")
	t.Setenv("IDEMP_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CalendarTZ.String() != "Europe/Lisbon" {
		t.Errorf("tz = %v", cfg.CalendarTZ)
	}
	if !reflect.DeepEqual(cfg.KafkaBrokers, []string{"k1:9092", "k2:9092"}) {
		t.Errorf("brokers = %v", cfg.KafkaBrokers)
	}
	if !cfg.UseMongo() || !cfg.UseKafka() {
		t.Error("expected mongo and kafka enabled")
	}
	if !reflect.DeepEqual(cfg.RetryBackoff, []time.Duration{2 * time.Second, 10 * time.Second}) {
		t.Errorf("backoff = %v", cfg.RetryBackoff)
	}
	if cfg.IdempotencyTTL != time.Hour {
		t.Errorf("ttl = %v", cfg.IdempotencyTTL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "time zone", key: "CALENDAR_TZ", val: "Mars/Olympus"},
		{name: "ttl", key: "IDEMP_TTL", val: "forever"},
		{name: "poll interval", key: "OUTBOX_POLL_INTERVAL", val: "soon"},
		{name: "backoff", key: "RETRY_BACKOFF", val: "1s,later"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
