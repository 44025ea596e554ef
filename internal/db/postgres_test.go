package db

import (
	"context"
	"testing"
	"time"
)

func TestPostgresConfigDefaults(t *testing.T) {
	got := PostgresConfig{MaxOpenConns: 4, MaxIdleConns: 9}.withDefaults()
	if got.MaxOpenConns != 4 || got.MaxIdleConns != 4 {
		t.Fatalf("idle conns should be capped at open conns, got %+v", got)
	}
	if got.ConnMaxLifetime != 30*time.Minute || got.PingTimeout != 5*time.Second {
		t.Fatalf("unexpected defaults %+v", got)
	}
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	if _, err := OpenPostgres(context.Background(), PostgresConfig{}); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}
