package main

import (
	"os"
	"testing"
	"time"
)

// TestPlural checks plural utility
func TestPlural(t *testing.T) {
	if plural(1) != "" {
		t.Errorf("plural(1) = %q, want \"\"", plural(1))
	}
	if plural(2) != "s" {
		t.Errorf("plural(2) = %q, want \"s\"", plural(2))
	}
}

// TestFormatUptime checks uptime formatting tiers
func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5 seconds"},
		{1 * time.Second, "1 second"},
		{2*time.Minute + 1*time.Second, "2 minutes, 1 second"},
		{1*time.Hour + 1*time.Minute + 30*time.Second, "1 hour, 1 minute, 30 seconds"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// TestGetEnvDuration checks parsing and fallback
func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "90s")
	defer os.Unsetenv("TEST_DURATION")
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("getEnvDuration = %v, want 90s", got)
	}

	os.Setenv("TEST_DURATION", "notaduration")
	if got := getEnvDuration("TEST_DURATION", 42*time.Second); got != 42*time.Second {
		t.Errorf("getEnvDuration fallback failed, got %v", got)
	}
}

// TestGetEnvInt checks parsing and fallback
func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_INT", "12")
	defer os.Unsetenv("TEST_INT")
	if got := getEnvInt("TEST_INT", 7); got != 12 {
		t.Errorf("getEnvInt = %d, want 12", got)
	}

	os.Setenv("TEST_INT", "notanint")
	if got := getEnvInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvInt fallback failed, got %v", got)
	}
}
