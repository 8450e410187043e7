package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CHEATSHEET_*). A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// A double underscore nests: CHEATSHEET_AUTH__CHECK_TIMEOUT -> auth.check_timeout.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Decoding merges into existing slices, so a configured list replaces
	// the default outright.
	if k.Exists("gated_subjects") {
		cfg.GatedSubjects = nil
	}
	if k.Exists("auth.trusted_origins") {
		cfg.Auth.TrustedOrigins = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Lists set from the environment arrive as one comma-separated item.
	cfg.GatedSubjects = splitList(cfg.GatedSubjects)
	cfg.Auth.TrustedOrigins = splitList(cfg.Auth.TrustedOrigins)

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 0..65535", c.Port)
	}

	for key, raw := range map[string]string{
		"site_url":          c.SiteURL,
		"platform.site_url": c.Platform.SiteURL,
		"platform.api_url":  c.Platform.APIURL,
	} {
		if err := checkAbsolute(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if c.Auth.CookieMaxAge <= 0 {
		return fmt.Errorf("auth.cookie_max_age must be positive")
	}
	if c.Auth.CheckTimeout <= 0 {
		return fmt.Errorf("auth.check_timeout must be positive")
	}
	if c.Platform.Timeout < 0 {
		return fmt.Errorf("platform.timeout must be non-negative")
	}

	for _, o := range c.Auth.TrustedOrigins {
		if !isOrigin(o) {
			return fmt.Errorf("invalid trusted origin %q: want scheme://host[:port]", o)
		}
	}

	return nil
}

// TrustedOrigins returns the origins whose messages the bridge accepts.
// With none configured, only the parent site itself is trusted.
func (c *Config) TrustedOrigins() []string {
	if len(c.Auth.TrustedOrigins) > 0 {
		return c.Auth.TrustedOrigins
	}
	u, err := url.Parse(c.Platform.SiteURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Scheme + "://" + u.Host}
}

// DatabasePath is the SQLite file under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "cheatsheet.db")
}

func checkAbsolute(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

func isOrigin(raw string) bool {
	if checkAbsolute(raw) != nil {
		return false
	}
	u, _ := url.Parse(raw)
	return (u.Path == "" || u.Path == "/") && u.RawQuery == "" && u.Fragment == "" && u.User == nil
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		out = append(out, splitAndTrim(item)...)
	}
	return out
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
