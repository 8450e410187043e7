package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the subject catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gated := make(map[string]bool, len(cfg.GatedSubjects))
		for _, id := range cfg.GatedSubjects {
			gated[id] = true
		}

		cat := subjects.Default()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tROUTE\tGATED\tTITLE")
		for _, c := range subjects.Categories {
			for _, s := range cat.ByCategory(c) {
				mark := ""
				if gated[s.ID] {
					mark = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Category, s.Route(), mark, s.Title)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d subjects\n", cat.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subjectsCmd)
}
