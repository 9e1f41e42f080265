package clock

import (
	"testing"
	"time"
)

func TestSystem_IsUTC(t *testing.T) {
	now := System{}.Now()
	if now.Location() != time.UTC {
		t.Fatalf("System.Now must be UTC, got %v", now.Location())
	}
	if d := time.Since(now); d < 0 || d > 2*time.Second {
		t.Fatalf("System.Now too far from wall clock: %v", d)
	}
}

func TestManual_SetAndAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	m := NewManual(start)

	if !m.Now().Equal(start) || m.Now().Location() != time.UTC {
		t.Fatalf("NewManual should keep the instant and normalise to UTC, got %v", m.Now())
	}

	got := m.AdvanceDays(14)
	if want := start.Add(14 * 24 * time.Hour); !got.Equal(want) {
		t.Fatalf("AdvanceDays: got %v want %v", got, want)
	}

	m.Advance(90 * time.Minute)
	if want := start.Add(14*24*time.Hour + 90*time.Minute); !m.Now().Equal(want) {
		t.Fatalf("Advance: got %v want %v", m.Now(), want)
	}

	reset := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	m.Set(reset)
	if !m.Now().Equal(reset) {
		t.Fatalf("Set: got %v want %v", m.Now(), reset)
	}
}
