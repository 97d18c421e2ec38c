package observability

import "github.com/prometheus/client_golang/prometheus"

// Backfill outcome label values.
const (
	OutcomeUpdated = "updated"
	OutcomeDeleted = "deleted"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

var (
	// RowsIngested counts spreadsheet rows normalized by the ingest pipeline.
	RowsIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reschedule_rows_ingested_total",
		Help: "Spreadsheet rows normalized into records.",
	})

	// RecordsImported counts records written to the store by seed or import,
	// labelled by the action that wrote them.
	RecordsImported = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reschedule_records_imported_total",
		Help: "Records inserted from the baseline snapshot.",
	}, []string{"action"})

	// BackfillOutcomes counts per-record results of the date backfill.
	BackfillOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reschedule_backfill_records_total",
		Help: "Date backfill results per record.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(RowsIngested, RecordsImported, BackfillOutcomes)
}
