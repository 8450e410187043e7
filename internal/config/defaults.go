package config

import "time"

// DefaultPath is where init writes and every command reads configuration.
const DefaultPath = ".cheatsheet.yml"

// EnvPrefix marks environment overrides: CHEATSHEET_PORT sets port and
// CHEATSHEET_PLATFORM__SITE_URL sets platform.site_url.
const EnvPrefix = "CHEATSHEET_"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:          3000,
		ContentDir:    "content",
		DataDir:       ".cheatsheet",
		SiteURL:       "https://learn.codeunia.com",
		SiteName:      "Codeunia Learn",
		GatedSubjects: []string{"python"},
		Platform: PlatformConfig{
			SiteURL:       "https://codeunia.com",
			APIURL:        "https://api.codeunia.com",
			SignInPath:    "/auth/signin",
			SignUpPath:    "/auth/signup",
			LogoutPath:    "/auth/logout",
			ValidatePath:  "/auth/validate",
			ProfilePath:   "/auth/me",
			CheckPath:     "/auth/check",
			DashboardPath: "/dashboard",
			SettingsPath:  "/settings",
			Timeout:       Duration(10 * time.Second),
		},
		Auth: AuthConfig{
			CookieName:   "codeunia_auth_token",
			CookieMaxAge: Duration(7 * 24 * time.Hour),
			CheckTimeout: Duration(5 * time.Second),
			CrossOrigin:  true,
		},
		Render: RenderConfig{
			HighlightStyle: "github",
		},
	}
}
