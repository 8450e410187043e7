package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cheatsheet/internal/config"
	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cheatsheet configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for the parent platform, the content directory and the gated subjects, and writes a .cheatsheet.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var ids []string
		for _, s := range subjects.Default().All() {
			ids = append(ids, s.ID)
		}
		_, err := config.RunWizard(cfgFile, ids)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
