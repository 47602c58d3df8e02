package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LQA_CONFIG_DIR", dir)
	t.Setenv("LQA_API_URL", "")
	t.Setenv("LQA_LOG_LEVEL", "")
	t.Cleanup(func() {
		mu.Lock()
		globalCfg = nil
		mu.Unlock()
	})
	return dir
}

func TestLoadCreatesDefaults(t *testing.T) {
	dir := useTempDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIUrl != DefaultAPIURL {
		t.Errorf("APIUrl = %q, want %q", cfg.APIUrl, DefaultAPIURL)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	useTempDir(t)
	t.Setenv("LQA_API_URL", "https://legal.example.com")
	t.Setenv("LQA_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIUrl != "https://legal.example.com" {
		t.Errorf("APIUrl = %q", cfg.APIUrl)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if GetAPIUrl() != "https://legal.example.com" {
		t.Errorf("GetAPIUrl() = %q", GetAPIUrl())
	}
}

func TestGetSetList(t *testing.T) {
	useTempDir(t)

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		key, value string
	}{
		{"api_url", "http://10.0.0.5:8080"},
		{"log.level", "warn"},
		{"log.file", "/tmp/lqa.log"},
		{"qa.default_size", "20"},
	}

	for _, tt := range tests {
		if err := Set(tt.key, tt.value); err != nil {
			t.Fatalf("Set(%q) error = %v", tt.key, err)
		}
		got, err := Get(tt.key)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", tt.key, err)
		}
		if got != tt.value {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.value)
		}
	}

	if err := Set("log.level", "verbose"); err == nil {
		t.Error("Set(log.level, verbose) should fail")
	}
	if _, err := Get("missing.key"); err == nil {
		t.Error("Get(missing.key) should fail")
	}

	all, err := List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if all["qa.default_size"] != "20" || all["api_url"] != "http://10.0.0.5:8080" {
		t.Errorf("List() = %v", all)
	}

	// Values survive a reload from disk
	mu.Lock()
	globalCfg = nil
	mu.Unlock()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if cfg.LogFile != "/tmp/lqa.log" || cfg.CustomSettings["qa.default_size"] != "20" {
		t.Errorf("reloaded = %+v", cfg)
	}
}

func TestNotLoaded(t *testing.T) {
	mu.Lock()
	saved := globalCfg
	globalCfg = nil
	mu.Unlock()
	defer func() {
		mu.Lock()
		globalCfg = saved
		mu.Unlock()
	}()

	if _, err := Get("api_url"); err == nil {
		t.Error("Get() without Load() should fail")
	}
	if GetAPIUrl() != DefaultAPIURL {
		t.Errorf("GetAPIUrl() = %q, want default", GetAPIUrl())
	}
}
