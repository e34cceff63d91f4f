package internal

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.Search.Debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v, want 500ms", cfg.Search.Debounce)
	}
	if cfg.App.HTTP.Address() != ":3333" {
		t.Errorf("address = %q", cfg.App.HTTP.Address())
	}
}

func TestAPIConfig_RejectsNonHTTP(t *testing.T) {
	for _, base := range []string{"", "localhost:3333", "ftp://example.com", "http://"} {
		cfg := APIConfig{BaseURL: base, Timeout: time.Second}
		if err := cfg.Validate(); err == nil {
			t.Errorf("base_url %q should fail validation", base)
		}
	}
}

func TestAPIConfig_RequiresTimeout(t *testing.T) {
	cfg := APIConfig{BaseURL: "http://localhost:3333"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero timeout should fail validation")
	}
}

func TestSearchConfig_ZeroDebounceAllowed(t *testing.T) {
	cfg := SearchConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero debounce should pass: %v", err)
	}
	cfg.Debounce = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("negative debounce should fail")
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	cfg := HTTPConfig{Port: 70000}
	if err := cfg.Validate(); err == nil {
		t.Error("port 70000 should fail")
	}
}

func TestFullConfig_NamesFailingSection(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Path = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("empty store path should fail")
	}
	if !strings.HasPrefix(err.Error(), "store:") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	t.Setenv("PETDESK_API_BASE_URL", "http://pets.internal:8080")
	t.Setenv("PETDESK_SEARCH_DEBOUNCE", "750ms")
	t.Setenv("PETDESK_LOG_LEVEL", "debug")

	cfg := NewDefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.API.BaseURL != "http://pets.internal:8080" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Search.Debounce != 750*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Search.Debounce)
	}
	if cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	if cfg.Store.Path != "./db.json" {
		t.Errorf("unset variable changed store path: %q", cfg.Store.Path)
	}
}

func TestApplyEnv_Validates(t *testing.T) {
	t.Setenv("PETDESK_API_BASE_URL", "not a url")
	if err := NewDefaultConfig().ApplyEnv(); err == nil {
		t.Fatal("invalid base url from env should fail")
	}
}
