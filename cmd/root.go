package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cheatsheet/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cheatsheet",
	Short: "Serve the Codeunia learning cheatsheets",
	Long: `cheatsheet serves programming cheatsheets rendered from Markdown and MDX
files. Selected subjects are gated behind a sign-in on the parent Codeunia
platform; the site never handles credentials itself and only forwards
tokens the platform issued.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
