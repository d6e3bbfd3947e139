package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "owm.yaml")
	content := []byte("api_key: abc123\nunits: imperial\nlanguage: fr\ntimeout: 3s\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := f.Get()
	if s.APIKey != "abc123" || s.Units != "imperial" || s.Language != "fr" {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if s.Timeout != 3*time.Second {
		t.Fatalf("expected timeout 3s, got %v", s.Timeout)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "owm.yaml")
	if err := os.WriteFile(path, []byte("api_key: abc123\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := f.Get()
	if s.Units != "metric" {
		t.Fatalf("expected default units=metric, got %q", s.Units)
	}
	if s.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout 10s, got %v", s.Timeout)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OWM_API_KEY", "abc123")
	t.Setenv("OWM_UNITS", "standard")

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.APIKey != "abc123" {
		t.Fatalf("expected api key from env, got %q", s.APIKey)
	}
	if s.Units != "standard" {
		t.Fatalf("expected units=standard, got %q", s.Units)
	}
}
