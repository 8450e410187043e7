package cmd

import (
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cheatsheet/internal/content"
	"github.com/ziadkadry99/cheatsheet/internal/subjects"
)

var checkIgnore []string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the content directory against the subject catalog",
	Long: `Lists subjects that have no document (their pages show the placeholder)
and documents that no subject links to. Exits non-zero when a subject is
missing its document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, p := range checkIgnore {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("invalid ignore pattern %q", p)
			}
		}

		files, err := content.NewResolver(cfg.ContentDir, nil).Inventory()
		if err != nil {
			return err
		}
		report := checkContent(subjects.Default(), files, checkIgnore)

		for _, id := range report.missing {
			fmt.Printf("missing   %s (no %s.mdx or %s.md)\n", id, id, id)
		}
		for _, f := range report.orphans {
			fmt.Printf("orphan    %s\n", f)
		}
		fmt.Printf("\n%d documents, %d subjects, %d missing, %d orphaned\n",
			len(files), report.subjects, len(report.missing), len(report.orphans))

		if len(report.missing) > 0 {
			return fmt.Errorf("%d subjects have no content", len(report.missing))
		}
		return nil
	},
}

type contentReport struct {
	subjects int
	missing  []string // Subject IDs without a document.
	orphans  []string // Documents no subject resolves to.
}

// checkContent matches inventory files (slash-separated, relative to the
// content directory) against the catalog the way the resolver picks files.
func checkContent(cat *subjects.Catalog, files, ignore []string) contentReport {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	used := make(map[string]bool)
	report := contentReport{subjects: cat.Len()}
	for _, s := range cat.All() {
		candidates := []string{s.ID + content.RichExt, s.ID + content.PlainExt}
		if s.DocumentFile != "" {
			candidates = append([]string{path.Clean(s.DocumentFile)}, candidates...)
		}
		found := false
		for _, c := range candidates {
			if present[c] {
				used[c] = true
				found = true
				break
			}
		}
		if !found {
			report.missing = append(report.missing, s.ID)
		}
	}

	for _, f := range files {
		if used[f] || ignored(f, ignore) {
			continue
		}
		report.orphans = append(report.orphans, f)
	}
	return report
}

func ignored(file string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
	}
	return false
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "glob patterns of documents not to report as orphans (e.g. drafts/**)")
	rootCmd.AddCommand(checkCmd)
}
