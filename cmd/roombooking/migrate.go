package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/roombooking/internal/persistence/sqlstore"
	"github.com/example/roombooking/internal/persistence/sqlstore/migration"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema revisions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up [target]",
			Short: "Upgrade to target (default head)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				target := migration.Head
				if len(args) == 1 {
					target = args[0]
				}
				return a.withMigrator(cmd.Context(), func(m *migration.Manager) error {
					if err := m.Upgrade(cmd.Context(), target); err != nil {
						return err
					}
					return printCurrent(cmd.Context(), cmd.OutOrStdout(), m)
				})
			},
		},
		&cobra.Command{
			Use:   "down [target]",
			Short: "Downgrade to target (default one revision)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(cmd.Context(), func(m *migration.Manager) error {
					target := ""
					if len(args) == 1 {
						target = args[0]
					} else {
						current, err := m.Current(cmd.Context())
						if err != nil {
							return err
						}
						if current == "" {
							return fmt.Errorf("database is already at base")
						}
						target = previousRevision(m.History(), current)
					}
					if err := m.Downgrade(cmd.Context(), target); err != nil {
						return err
					}
					return printCurrent(cmd.Context(), cmd.OutOrStdout(), m)
				})
			},
		},
		&cobra.Command{
			Use:   "current",
			Short: "Print the applied revision",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(cmd.Context(), func(m *migration.Manager) error {
					return printCurrent(cmd.Context(), cmd.OutOrStdout(), m)
				})
			},
		},
		&cobra.Command{
			Use:   "history",
			Short: "List every revision, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withMigrator(cmd.Context(), func(m *migration.Manager) error {
					current, err := m.Current(cmd.Context())
					if err != nil {
						return err
					}
					history := m.History()
					out := cmd.OutOrStdout()
					for i := len(history) - 1; i >= 0; i-- {
						rev := history[i]
						parent := rev.DownRevision
						if parent == "" {
							parent = "<base>"
						}
						marker := ""
						if rev.Revision == current {
							marker = " (current)"
						}
						fmt.Fprintf(out, "%s -> %s%s, %s\n", parent, rev.Revision, marker, rev.Description)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func (a *app) withMigrator(ctx context.Context, fn func(*migration.Manager) error) error {
	store, err := sqlstore.Open(ctx, a.cfg.StoreConfig(), a.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := store.Migrator(a.logger)
	if err != nil {
		return err
	}
	return fn(m)
}

func previousRevision(history []migration.Migration, current string) string {
	for _, rev := range history {
		if rev.Revision == current && rev.DownRevision != "" {
			return rev.DownRevision
		}
	}
	return migration.Base
}

func printCurrent(ctx context.Context, w io.Writer, m *migration.Manager) error {
	current, err := m.Current(ctx)
	if err != nil {
		return err
	}
	if current == "" {
		current = migration.Base
	}
	_, err = fmt.Fprintln(w, current)
	return err
}
