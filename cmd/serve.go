package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/cheatsheet/internal/audit"
	"github.com/ziadkadry99/cheatsheet/internal/auth"
	"github.com/ziadkadry99/cheatsheet/internal/db"
	"github.com/ziadkadry99/cheatsheet/internal/livereload"
	"github.com/ziadkadry99/cheatsheet/internal/server"
)

var (
	servePort  int
	serveWatch bool
	serveDev   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cheatsheet web server",
	Long: `Starts the HTTP server: the cheatsheet pages, the auth bridge API used by the
browser script and the parent platform, and the audit API. With --watch, pages
reload in the browser whenever a content file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		watch := serveWatch || cfg.Dev.LiveReload

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		database, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		auditStore := audit.NewStore(database)
		bridge := newBridge(cfg, audit.NewSink(auditStore, logger.Named("audit")), logger)
		defer bridge.Close()

		web, err := newSite(cfg, bridge, watch, logger)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowedOrigins: cfg.TrustedOrigins(),
			AllowAll:       serveDev,
			Middleware:     []func(http.Handler) http.Handler{bridge.Middleware},
			RequestTimeout: 30 * time.Second,
		}, database, logger.Named("http"))

		r := srv.Router()
		auth.RegisterRoutes(r, bridge, links(cfg), web.Fragment)
		audit.RegisterRoutes(r, auditStore)
		web.RegisterRoutes(r)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)

		if watch {
			hub := livereload.NewHub(logger.Named("livereload"))
			defer hub.Close()
			srv.Streams().Get(livereload.Path, hub.ServeHTTP)

			watcher, err := livereload.NewWatcher(cfg.ContentDir, hub, livereload.DefaultDebounce, logger.Named("watch"))
			if err != nil {
				return err
			}
			g.Go(func() error { return watcher.Run(ctx) })
		}

		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		fmt.Fprintf(os.Stderr, "cheatsheet %s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Content: %s\n", cfg.ContentDir)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Parent platform: %s\n", cfg.Platform.SiteURL)
		if watch {
			fmt.Fprintln(os.Stderr, "  Live reload: on")
		}
		logger.Info("server started",
			zap.Int("port", cfg.Port),
			zap.Strings("gated", cfg.GatedSubjects),
			zap.Strings("trusted_origins", cfg.TrustedOrigins()))

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3000, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload pages when content changes")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
