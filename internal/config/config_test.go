package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.Auth.CookieName != "codeunia_auth_token" {
		t.Errorf("expected default cookie name, got %q", cfg.Auth.CookieName)
	}
	if cfg.Auth.CheckTimeout.Std() != 5*time.Second {
		t.Errorf("expected 5s check timeout, got %s", cfg.Auth.CheckTimeout)
	}
	if !cfg.Auth.CrossOrigin {
		t.Error("cross-origin check should default on")
	}
	if !reflect.DeepEqual(cfg.GatedSubjects, []string{"python"}) {
		t.Errorf("gated subjects = %v", cfg.GatedSubjects)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cheatsheet.yml")

	original := DefaultConfig()
	original.Port = 8080
	original.Production = true
	original.GatedSubjects = []string{"python", "react"}
	original.Platform.SiteURL = "https://staging.codeunia.com"
	original.Auth.CheckTimeout = Duration(2 * time.Second)
	original.Auth.TrustedOrigins = []string{"https://codeunia.com", "https://www.codeunia.com"}
	original.Render.StrictSanitize = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "check_timeout: 2s") {
		t.Errorf("durations should be written as text:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("missing file should give defaults, got %+v", cfg)
	}
}

func TestLoadEmptyListReplacesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yml")
	if err := os.WriteFile(path, []byte("gated_subjects: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.GatedSubjects) != 0 {
		t.Errorf("gated subjects = %v, want none", cfg.GatedSubjects)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CHEATSHEET_PORT", "4000")
	t.Setenv("CHEATSHEET_PLATFORM__SITE_URL", "https://example.com")
	t.Setenv("CHEATSHEET_AUTH__CHECK_TIMEOUT", "750ms")
	t.Setenv("CHEATSHEET_GATED_SUBJECTS", "python, react")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 4000 {
		t.Errorf("port = %d, want 4000", loaded.Port)
	}
	if loaded.Platform.SiteURL != "https://example.com" {
		t.Errorf("platform.site_url = %q", loaded.Platform.SiteURL)
	}
	if loaded.Auth.CheckTimeout.Std() != 750*time.Millisecond {
		t.Errorf("auth.check_timeout = %s", loaded.Auth.CheckTimeout)
	}
	if !reflect.DeepEqual(loaded.GatedSubjects, []string{"python", "react"}) {
		t.Errorf("gated_subjects = %v", loaded.GatedSubjects)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("port: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty content dir", func(c *Config) { c.ContentDir = "" }},
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"relative platform url", func(c *Config) { c.Platform.SiteURL = "codeunia.com" }},
		{"non-http api url", func(c *Config) { c.Platform.APIURL = "ftp://api.codeunia.com" }},
		{"empty site url", func(c *Config) { c.SiteURL = "" }},
		{"zero cookie max age", func(c *Config) { c.Auth.CookieMaxAge = 0 }},
		{"zero check timeout", func(c *Config) { c.Auth.CheckTimeout = 0 }},
		{"origin with path", func(c *Config) { c.Auth.TrustedOrigins = []string{"https://codeunia.com/auth"} }},
		{"origin without scheme", func(c *Config) { c.Auth.TrustedOrigins = []string{"codeunia.com"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTrustedOrigins(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TrustedOrigins(); !reflect.DeepEqual(got, []string{"https://codeunia.com"}) {
		t.Errorf("default trusted origins = %v", got)
	}

	cfg.Auth.TrustedOrigins = []string{"https://a.example", "https://b.example:8443"}
	if got := cfg.TrustedOrigins(); !reflect.DeepEqual(got, cfg.Auth.TrustedOrigins) {
		t.Errorf("configured trusted origins = %v", got)
	}
}

func TestCheckSubjects(t *testing.T) {
	known := []string{"python", "react"}
	if err := checkSubjects([]string{"python"}, known); err != nil {
		t.Errorf("known subject rejected: %v", err)
	}
	if err := checkSubjects([]string{"cobol"}, known); err == nil {
		t.Error("unknown subject accepted")
	}
	if err := checkSubjects([]string{"anything"}, nil); err != nil {
		t.Errorf("no catalog should accept anything: %v", err)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"python", []string{"python"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
