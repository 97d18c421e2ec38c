package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-reschedule-backend/internal/baseline"
	httpapi "github.com/tbourn/go-reschedule-backend/internal/http"
	"github.com/tbourn/go-reschedule-backend/internal/services"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Bulk-insert the deduplicated baseline into the database",
		Long: `Insert every distinct baseline record without comparing against the store.
Meant for an empty database; use "reconcile --import" to top up an existing one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := a.reconcileService(db, baseline.NewFile(a.baselinePath())).Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seed completed. Rows inserted: %d\n", n)
			return nil
		},
	}
}

func newReconcileCmd(a *app) *cobra.Command {
	var doImport bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare the database with the baseline and optionally import what is missing",
		Example: `
  # Report only
  reschedctl reconcile

  # Import baseline records whose natural key is not stored yet
  reschedctl reconcile --import`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			base := baseline.NewFile(a.baselinePath())
			svc := a.reconcileService(db, base)
			st, err := svc.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if snap, err := base.Snapshot(); err == nil {
				fmt.Fprintf(out, "Baseline: %s, sheet %s, generated %s\n",
					snap.Source, snap.Sheet, snap.GeneratedAt.Format(time.RFC3339))
			}
			fmt.Fprintf(out, "Live: %d, Baseline: %d, Ready: %t, Needs import: %t, Missing: %d\n",
				st.LiveCount, st.BaselineCount, st.Ready, st.NeedsImport, st.Missing)

			if !doImport || st.Missing == 0 {
				return nil
			}
			n, err := svc.ImportFromBaseline(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Import completed. Rows inserted: %d\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&doImport, "import", false, "Import missing baseline records")
	return cmd
}

func newBackfillDatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-dates",
		Short: "Rewrite stored dates to YYYY-MM-DD",
		Long: `Repair stored dates that are not canonical. A repaired record that collides with
another record's natural key is deleted. Failures on single records are counted
and reported, not fatal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			svc := &services.MaintenanceService{DB: db, Repo: httpapi.RepoShim()}
			rep, err := svc.BackfillDates(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Backfill completed. Total: %d, Normalized: %d, Updated: %d, Deleted: %d, Unparsed: %d, Failed: %d\n",
				rep.Total, rep.Normalized, rep.Updated, rep.Deleted, rep.Unparsed, rep.Failed,
			)
			return nil
		},
	}
}
