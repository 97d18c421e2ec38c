package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-reschedule-backend/internal/ingest"
	"github.com/tbourn/go-reschedule-backend/internal/observability"
	"github.com/tbourn/go-reschedule-backend/internal/sysutil"
)

// stdinSource as --source reads the workbook from standard input.
const stdinSource = "-"

func newIngestCmd(a *app) *cobra.Command {
	var source, out string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Build the baseline snapshot from the source workbook",
		Long: `Read the first sheet of the source workbook, normalize every non-blank row
and write the baseline snapshot the API serves as its read-only dataset.

The workbook is never modified.`,
		Example: `
  # Use SOURCE_PATH and BASELINE_PATH from the environment
  reschedctl ingest

  # Explicit paths
  reschedctl ingest --source ./ReagendamentoForm2025.xlsx --out ./data/baseline.json

  # Workbook on standard input
  reschedctl ingest --source - < ./ReagendamentoForm2025.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := sysutil.FirstNonEmpty(source, a.cfg.Data.SourcePath, ingest.DefaultSource)
			dst := sysutil.FirstNonEmpty(out, a.baselinePath())

			var (
				res *ingest.Result
				err error
			)
			if src == stdinSource {
				src = "stdin"
				res, err = ingest.IngestReader(cmd.InOrStdin())
			} else {
				res, err = ingest.Ingest(src)
			}
			if err != nil {
				return err
			}
			observability.RowsIngested.Add(float64(len(res.Records)))

			if err := ingest.WriteSnapshot(dst, ingest.NewSnapshot(res, src, time.Now())); err != nil {
				return err
			}
			a.log.Info().
				Str("source", src).
				Str("snapshot", dst).
				Int("records", len(res.Records)).
				Msg("baseline snapshot written")

			fmt.Fprintf(cmd.OutOrStdout(),
				"Ingest completed. Sheet: %s, Records: %d, Blank rows skipped: %d, Technicians: %d, Snapshot: %s\n",
				res.Sheet, len(res.Records), res.BlankRows, len(res.Technicians), dst,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "i", "", "Source workbook, - for stdin (default: $SOURCE_PATH)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Snapshot output path (default: --baseline)")
	return cmd
}
