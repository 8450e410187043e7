package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/cheatsheet/internal/audit"
	"github.com/ziadkadry99/cheatsheet/internal/db"
)

var (
	auditKind  string
	auditUser  string
	auditLimit int
	auditPrune time.Duration
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent sign-in and sign-out events",
	Long: `Prints the most recent auth events recorded by the server, newest first.
With --prune, deletes events older than the given age instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.DatabasePath()); os.IsNotExist(err) {
			fmt.Println("No audit log yet. Run `cheatsheet serve` first.")
			return nil
		}

		database, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store := audit.NewStore(database)
		ctx := cmd.Context()

		if auditPrune > 0 {
			n, err := store.DeleteBefore(ctx, time.Now().Add(-auditPrune))
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d events older than %s\n", n, auditPrune)
			return nil
		}

		entries, err := store.Query(ctx, audit.QueryFilter{
			Kind:   audit.Kind(auditKind),
			UserID: auditUser,
			Limit:  auditLimit,
		})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No events.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tKIND\tUSER\tSUBJECT\tORIGIN\tDETAIL")
		for _, e := range entries {
			user := e.Email
			if user == "" {
				user = e.UserID
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Timestamp.Local().Format(time.DateTime), e.Kind, dash(user), dash(e.Subject), dash(e.Origin), e.Detail)
		}
		return w.Flush()
	},
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	auditCmd.Flags().StringVar(&auditKind, "kind", "", "only events of this kind (sign_in, sign_out, token_rejected, untrusted_message)")
	auditCmd.Flags().StringVar(&auditUser, "user", "", "only events for this user ID")
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "number of events to show")
	auditCmd.Flags().DurationVar(&auditPrune, "prune", 0, "delete events older than this age (e.g. 720h)")
	rootCmd.AddCommand(auditCmd)
}
