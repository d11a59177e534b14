package cache

import (
	"context"
	"testing"

	"itapp/internal/config"
	"itapp/internal/pkg/logger"
)

func TestRedis_BypassWhenNotConfigured(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, logger.Nop())

	if err := r.SetJSON(context.Background(), "k", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var out map[string]int
	hit, err := r.GetJSON(context.Background(), "k", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := r.DeleteByPattern(context.Background(), "jobs:*"); err != nil {
		t.Fatalf("DeleteByPattern: %v", err)
	}
	if err := r.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error when unavailable")
	}
	if r.ttl != defaultTTL {
		t.Fatalf("expected default ttl, got %s", r.ttl)
	}
}
