package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cheatsheet/internal/progress"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the site as static HTML",
	Long: `Renders every page for a signed-out visitor and writes it under the output
directory, together with the stylesheets and scripts. Gated subjects are
written as sign-in prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		bridge := newBridge(cfg, nil, logger)
		defer bridge.Close()

		web, err := newSite(cfg, bridge, false, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		n, err := web.Export(ctx, exportDir, progress.NewReporter(os.Stderr))
		if err != nil {
			return fmt.Errorf("exporting site: %w", err)
		}
		fmt.Printf("Wrote %d files to %s\n", n, exportDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", "dist", "output directory")
	rootCmd.AddCommand(exportCmd)
}
