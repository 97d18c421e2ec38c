// Package services – ReconcileService
//
// This file compares the live store against the baseline snapshot by natural
// key and drives the explicit import of missing records. Nothing here runs on
// its own: an under-count is reported, and importing is always a separate,
// caller-invoked action.
//
// The read-then-write sequence is not transactional. A concurrent writer can
// cause duplicate inserts; display and analysis dedupe by natural key again.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/internal/dedupe"
	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/observability"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
)

// Import action labels.
const (
	ActionImport = "import"
	ActionSeed   = "seed"
)

// BaselineSource is the read-only baseline dataset.
type BaselineSource interface {
	Records(ctx context.Context) ([]domain.Reschedule, error)
	Count(ctx context.Context) (int64, error)
}

// Judgment is the count-based reconciliation verdict.
type Judgment struct {
	// Ready is false while either side is empty ("not yet loaded").
	Ready bool `json:"ready"`
	// NeedsImport is a heuristic: live < baseline. Equal counts do not prove
	// equal content; ComputeMissing is authoritative.
	NeedsImport bool `json:"needsImport"`
}

// Reconcile judges two counts. No judgment is made unless both are positive.
func Reconcile(liveCount, baselineCount int64) Judgment {
	if liveCount <= 0 || baselineCount <= 0 {
		return Judgment{}
	}
	return Judgment{Ready: true, NeedsImport: liveCount < baselineCount}
}

// ComputeMissing returns baseline records whose natural key is absent from live.
func ComputeMissing(baseline, live []domain.Reschedule) []domain.Reschedule {
	return dedupe.DiffMissing(baseline, live)
}

// Status is a reconciliation snapshot of both datasets.
type Status struct {
	LiveCount     int64 `json:"liveCount"`
	BaselineCount int64 `json:"baselineCount"`
	Judgment
	// Missing is the number of distinct baseline keys absent from the store.
	Missing int `json:"missing"`
}

// ReconcileService compares and imports between baseline and store.
type ReconcileService struct {
	DB       *gorm.DB
	Repo     RescheduleRepo
	Baseline BaselineSource

	// BatchSize is passed to CreateReschedules.
	BatchSize int
}

// Status reads both datasets and reports counts, the verdict and the exact
// number of missing keys.
func (s *ReconcileService) Status(ctx context.Context) (*Status, error) {
	tr := otel.Tracer("services/ReconcileService")
	ctx, span := tr.Start(ctx, "Status")
	defer span.End()

	st, _, err := s.status(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("reconcile.live", st.LiveCount),
		attribute.Int64("reconcile.baseline", st.BaselineCount),
		attribute.Int("reconcile.missing", st.Missing),
	)
	return st, nil
}

func (s *ReconcileService) status(ctx context.Context) (*Status, []domain.Reschedule, error) {
	liveCount, err := s.Repo.CountReschedules(ctx, s.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("count live: %w", err)
	}
	live, err := s.Repo.ListReschedules(ctx, s.DB, repo.ListOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("list live: %w", err)
	}
	baseCount, err := s.Baseline.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBaselineUnavailable, err)
	}
	base, err := s.Baseline.Records(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBaselineUnavailable, err)
	}

	missing := dedupe.Dedupe(ComputeMissing(base, live))
	st := &Status{
		LiveCount:     liveCount,
		BaselineCount: baseCount,
		Judgment:      Reconcile(liveCount, baseCount),
		Missing:       len(missing),
	}
	return st, missing, nil
}

// ImportMissing dedupes missing by natural key, drops baseline ids and bulk
// inserts the rest. Nothing left after deduplication is not an error.
func (s *ReconcileService) ImportMissing(ctx context.Context, missing []domain.Reschedule) (int64, error) {
	return s.insert(ctx, ActionImport, missing)
}

// ImportFromBaseline computes the missing set against the current store and
// imports it.
func (s *ReconcileService) ImportFromBaseline(ctx context.Context) (int64, error) {
	tr := otel.Tracer("services/ReconcileService")
	ctx, span := tr.Start(ctx, "ImportFromBaseline")
	defer span.End()

	_, missing, err := s.status(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	n, err := s.ImportMissing(ctx, missing)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("reconcile.inserted", n))
	return n, nil
}

// Seed bulk-inserts the deduplicated baseline without comparing against the
// store. It is meant for an empty store.
func (s *ReconcileService) Seed(ctx context.Context) (int64, error) {
	tr := otel.Tracer("services/ReconcileService")
	ctx, span := tr.Start(ctx, "Seed")
	defer span.End()

	base, err := s.Baseline.Records(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("%w: %v", ErrBaselineUnavailable, err)
	}
	if len(base) == 0 {
		return 0, ErrNothingToSeed
	}
	return s.insert(ctx, ActionSeed, base)
}

func (s *ReconcileService) insert(ctx context.Context, action string, records []domain.Reschedule) (int64, error) {
	unique := dedupe.Dedupe(records)
	if len(unique) == 0 {
		return 0, nil
	}
	for i := range unique {
		unique[i].ID = ""
	}

	n, err := s.Repo.CreateReschedules(ctx, s.DB, unique, s.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", action, err)
	}
	observability.RecordsImported.WithLabelValues(action).Add(float64(n))
	zerolog.Ctx(ctx).Info().
		Str("action", action).
		Int("candidates", len(records)).
		Int64("inserted", n).
		Msg("baseline records inserted")

	trace.SpanFromContext(ctx).AddEvent("records inserted",
		trace.WithAttributes(attribute.Int64("count", n)))
	return n, nil
}
