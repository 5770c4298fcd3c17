package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func setMemoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "dbinit-test-secret")
	t.Setenv("ENV", "development")
}

func TestRun_SeedPrintsDemoCredentials(t *testing.T) {
	setMemoryEnv(t)
	var out bytes.Buffer

	if err := run(context.Background(), options{seed: true}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "test@example.com") || !strings.Contains(out.String(), "admin@example.com") {
		t.Fatalf("expected demo credentials in output, got %q", out.String())
	}
}

func TestRun_ResetAbortsWithoutConfirmation(t *testing.T) {
	setMemoryEnv(t)
	var out bytes.Buffer

	if err := run(context.Background(), options{reset: true}, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "aborted") {
		t.Fatalf("expected abort, got %q", out.String())
	}
}

func TestRun_ResetWithYesSkipsPrompt(t *testing.T) {
	setMemoryEnv(t)
	var out bytes.Buffer

	if err := run(context.Background(), options{reset: true, yes: true}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), "Continue?") {
		t.Fatalf("prompt shown despite -yes: %q", out.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "? "); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
