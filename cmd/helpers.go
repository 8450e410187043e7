package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/cheatsheet/internal/auth"
	"github.com/ziadkadry99/cheatsheet/internal/config"
	"github.com/ziadkadry99/cheatsheet/internal/content"
	"github.com/ziadkadry99/cheatsheet/internal/logging"
	"github.com/ziadkadry99/cheatsheet/internal/render"
	"github.com/ziadkadry99/cheatsheet/internal/site"
	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `cheatsheet init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// links points at the parent platform's pages.
func links(cfg *config.Config) auth.Links {
	p := cfg.Platform
	return auth.Links{
		SiteURL:       p.SiteURL,
		SignInPath:    p.SignInPath,
		SignUpPath:    p.SignUpPath,
		LogoutPath:    p.LogoutPath,
		CheckPath:     p.CheckPath,
		DashboardPath: p.DashboardPath,
		SettingsPath:  p.SettingsPath,
	}
}

// newBridge builds the auth bridge against the configured platform. Close it
// when done.
func newBridge(cfg *config.Config, sink auth.EventSink, logger *zap.Logger) *auth.Bridge {
	p := cfg.Platform
	return auth.NewBridge(auth.Options{
		Platform:       auth.NewPlatformClient(p.APIURL, p.ValidatePath, p.ProfilePath, p.Timeout.Std()),
		TrustedOrigins: cfg.TrustedOrigins(),
		CheckTimeout:   cfg.Auth.CheckTimeout.Std(),
		CrossOrigin:    cfg.Auth.CrossOrigin,
		Cookies: auth.Cookies{
			Name:   cfg.Auth.CookieName,
			MaxAge: cfg.Auth.CookieMaxAge.Std(),
			Secure: cfg.Production,
		},
		Sink:   sink,
		Logger: logger.Named("auth"),
	})
}

// newSite wires the catalog, content and renderer into a Site.
func newSite(cfg *config.Config, bridge *auth.Bridge, liveReload bool, logger *zap.Logger) (*site.Site, error) {
	return site.New(site.Options{
		Catalog:  subjects.Default(),
		Resolver: content.NewResolver(cfg.ContentDir, logger.Named("content")),
		Renderer: render.New(
			render.WithStyle(cfg.Render.HighlightStyle),
			render.WithStrictSanitize(cfg.Render.StrictSanitize),
			render.WithLogger(logger.Named("render")),
		),
		Bridge:     bridge,
		Links:      links(cfg),
		Gated:      cfg.GatedSubjects,
		SiteName:   cfg.SiteName,
		SiteURL:    cfg.SiteURL,
		LiveReload: liveReload,
		Logger:     logger.Named("site"),
	})
}
