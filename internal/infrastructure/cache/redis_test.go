package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	// Use a non-zero DB to verify it's set
	c, err := OpenRedis(s.Addr(), "", 2)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	v, err := c.Get(ctx, "k").Result()
	if err != nil {
		t.Fatalf("GET err: %v", err)
	}
	if v != "v" {
		t.Fatalf("GET value = %q, want %q", v, "v")
	}
}

func TestOpenRedis_WithPassword(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("s3cret")

	if _, err := OpenRedis(s.Addr(), "wrong", 0); err == nil {
		t.Fatal("expected auth error with wrong password")
	}
	c, err := OpenRedis(s.Addr(), "s3cret", 0)
	if err != nil {
		t.Fatalf("OpenRedis with password: %v", err)
	}
	_ = c.Close()
}

func TestOpenRedis_Failure(t *testing.T) {
	// closed local port, Ping should fail quickly
	if _, err := OpenRedis("127.0.0.1:1", "", 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}
