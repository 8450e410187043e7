package config

import (
	"time"
)

// Duration is a time.Duration that reads and writes as "5s" in YAML and
// environment overrides.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config is the top-level cheatsheet configuration, corresponding to
// .cheatsheet.yml.
type Config struct {
	Port          int      `yaml:"port" koanf:"port"`
	ContentDir    string   `yaml:"content_dir" koanf:"content_dir"`
	DataDir       string   `yaml:"data_dir" koanf:"data_dir"`
	SiteURL       string   `yaml:"site_url" koanf:"site_url"`
	SiteName      string   `yaml:"site_name" koanf:"site_name"`
	Production    bool     `yaml:"production" koanf:"production"`
	GatedSubjects []string `yaml:"gated_subjects" koanf:"gated_subjects"`

	Platform PlatformConfig `yaml:"platform" koanf:"platform"`
	Auth     AuthConfig     `yaml:"auth" koanf:"auth"`
	Render   RenderConfig   `yaml:"render" koanf:"render"`
	Dev      DevConfig      `yaml:"dev" koanf:"dev"`
}

// PlatformConfig locates the parent platform: its public site and its API.
type PlatformConfig struct {
	SiteURL       string   `yaml:"site_url" koanf:"site_url"`
	APIURL        string   `yaml:"api_url" koanf:"api_url"`
	SignInPath    string   `yaml:"signin_path" koanf:"signin_path"`
	SignUpPath    string   `yaml:"signup_path" koanf:"signup_path"`
	LogoutPath    string   `yaml:"logout_path" koanf:"logout_path"`
	ValidatePath  string   `yaml:"validate_path" koanf:"validate_path"`
	ProfilePath   string   `yaml:"profile_path" koanf:"profile_path"`
	CheckPath     string   `yaml:"check_path" koanf:"check_path"`
	DashboardPath string   `yaml:"dashboard_path" koanf:"dashboard_path"`
	SettingsPath  string   `yaml:"settings_path" koanf:"settings_path"`
	Timeout       Duration `yaml:"timeout" koanf:"timeout"`
}

// AuthConfig holds cookie and cross-origin settings.
type AuthConfig struct {
	CookieName     string   `yaml:"cookie_name" koanf:"cookie_name"`
	CookieMaxAge   Duration `yaml:"cookie_max_age" koanf:"cookie_max_age"`
	TrustedOrigins []string `yaml:"trusted_origins" koanf:"trusted_origins"`
	CheckTimeout   Duration `yaml:"check_timeout" koanf:"check_timeout"`
	CrossOrigin    bool     `yaml:"cross_origin" koanf:"cross_origin"`
}

type RenderConfig struct {
	StrictSanitize bool   `yaml:"strict_sanitize" koanf:"strict_sanitize"`
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
}

type DevConfig struct {
	LiveReload bool `yaml:"live_reload" koanf:"live_reload"`
}
