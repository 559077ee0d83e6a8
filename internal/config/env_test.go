package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "42")
	if got := intEnvOrDefault("INT_TEST", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	for _, bad := range []string{"", "abc", "0", "-3"} {
		t.Setenv("INT_TEST", bad)
		if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
			t.Fatalf("expected default for %q, got %d", bad, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	t.Setenv("DUR_TEST", "90s")
	if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}

	for _, bad := range []string{"", "soon", "-5s", "0"} {
		t.Setenv("DUR_TEST", bad)
		if got := durationEnvOrDefault("DUR_TEST", time.Minute); got != time.Minute {
			t.Fatalf("expected default for %q, got %s", bad, got)
		}
	}
}
