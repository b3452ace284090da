package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/repository"
)

// app carries what every subcommand needs. The store is opened lazily in
// PersistentPreRunE so --help works without a database.
type app struct {
	cfg   *config.Config
	dsn   string
	store repository.Store
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:          "maintain",
		Short:        "Portfolio database maintenance",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.dsn, "db", cfg.DatabasePath, "SQLite file path or postgres:// URL")

	root.AddCommand(
		a.initCmd(),
		a.statsCmd(),
		a.cleanupCmd(),
		a.contactsCmd(),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := repository.Open(ctx, a.dsn)
	if err != nil {
		return err
	}
	a.store = s
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the tables if they do not exist",
		Long: `Create the contacts and resume_downloads tables.

Existing tables and rows are left untouched, so running init twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Open already ran Init; run it again so the command means what it says.
			if err := a.store.Init(cmd.Context()); err != nil {
				return err
			}
			slog.Info("schema initialized", "db", redactDSN(a.dsn))
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show contact and download counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "total contacts\t%d\n", st.TotalContacts)
			fmt.Fprintf(w, "recent contacts (7d)\t%d\n", st.RecentContacts)
			fmt.Fprintf(w, "total downloads\t%d\n", st.TotalDownloads)
			return w.Flush()
		},
	}
}

func (a *app) cleanupCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete contacts and downloads older than the retention period",
		Long: `Delete rows older than --days from both tables in one transaction.

Examples:
  maintain cleanup            # use RETENTION_DAYS (default 90)
  maintain cleanup --days 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			removed, err := a.store.ClearOldData(cmd.Context(), days)
			if err != nil {
				return err
			}
			slog.Info("old data cleared", "days", days, "removed", removed)
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d rows older than %d days\n", removed, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", a.cfg.RetentionDays, "retention period in days")
	return cmd
}

func (a *app) contactsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List the most recent contact submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			contacts, err := a.store.ListContacts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRECEIVED\tNAME\tEMAIL\tSUBJECT")
			for _, c := range contacts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					c.ID, c.CreatedAt.UTC().Format("2006-01-02 15:04"), oneLine(c.Name), oneLine(c.Email), oneLine(c.Subject))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of contacts to show")
	return cmd
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// redactDSN hides the password of a postgres URL.
func redactDSN(dsn string) string {
	if !repository.IsPostgresDSN(dsn) {
		return dsn
	}
	scheme, rest, _ := strings.Cut(dsn, "://")
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return dsn
	}
	user, _, hasPassword := strings.Cut(rest[:at], ":")
	if !hasPassword {
		return dsn
	}
	return scheme + "://" + user + ":***@" + rest[at+1:]
}
