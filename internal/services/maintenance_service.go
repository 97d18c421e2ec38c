// Package services – MaintenanceService
//
// This file implements the date backfill: persisted records whose date is not
// canonical are reinterpreted as spreadsheet serials or D/M/YYYY text. A
// record whose repaired natural key already belongs to another record is a
// resolved duplicate and is deleted; otherwise its date is updated in place.
//
// A failure on one record is logged and counted; the batch always continues.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/ingest"
	"github.com/tbourn/go-reschedule-backend/internal/observability"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
)

// BackfillReport summarizes one backfill run. Normalized = Updated + Deleted.
type BackfillReport struct {
	Total      int `json:"total"`
	Normalized int `json:"normalized"`
	Updated    int `json:"updated"`
	Deleted    int `json:"deleted"`
	// Unparsed counts non-canonical dates that matched neither repair rule.
	Unparsed int `json:"unparsed"`
	Failed   int `json:"failed"`
}

// MaintenanceService runs bulk repair jobs over the store.
type MaintenanceService struct {
	DB   *gorm.DB
	Repo RescheduleRepo
}

// RepairDate returns the canonical form of a malformed stored date.
// Tokens of 4 to 6 digits are serials; otherwise D/M/YYYY is tried.
func RepairDate(s string) (string, bool) {
	if out, ok := ingest.ParseSerialToken(s); ok {
		return out, true
	}
	return ingest.ParseDayMonthYear(s)
}

// BackfillDates scans every record and repairs non-canonical dates.
// The returned error is non-nil only when the scan itself fails.
func (s *MaintenanceService) BackfillDates(ctx context.Context) (BackfillReport, error) {
	tr := otel.Tracer("services/MaintenanceService")
	ctx, span := tr.Start(ctx, "BackfillDates")
	defer span.End()

	log := zerolog.Ctx(ctx)
	var rep BackfillReport

	all, err := s.Repo.ListReschedules(ctx, s.DB, repo.ListOptions{})
	if err != nil {
		span.RecordError(err)
		return rep, fmt.Errorf("list records: %w", err)
	}
	rep.Total = len(all)

	for _, r := range all {
		if r.Date == "" || ingest.IsCanonicalDate(r.Date) {
			continue
		}
		fixed, ok := RepairDate(r.Date)
		if !ok {
			rep.Unparsed++
			observability.BackfillOutcomes.WithLabelValues(observability.OutcomeSkipped).Inc()
			continue
		}

		outcome, err := s.repair(ctx, r, fixed)
		if err != nil {
			rep.Failed++
			observability.BackfillOutcomes.WithLabelValues(observability.OutcomeFailed).Inc()
			log.Warn().Err(err).Str("id", r.ID).Str("date", r.Date).Msg("backfill: record skipped")
			continue
		}
		observability.BackfillOutcomes.WithLabelValues(outcome).Inc()
		rep.Normalized++
		if outcome == observability.OutcomeDeleted {
			rep.Deleted++
		} else {
			rep.Updated++
		}
	}

	span.SetAttributes(
		attribute.Int("backfill.total", rep.Total),
		attribute.Int("backfill.normalized", rep.Normalized),
		attribute.Int("backfill.failed", rep.Failed),
	)
	log.Info().
		Int("total", rep.Total).
		Int("normalized", rep.Normalized).
		Int("updated", rep.Updated).
		Int("deleted", rep.Deleted).
		Int("failed", rep.Failed).
		Msg("backfill finished")
	return rep, nil
}

// repair deletes r when another record already holds the repaired key, and
// updates its date otherwise.
func (s *MaintenanceService) repair(ctx context.Context, r domain.Reschedule, date string) (string, error) {
	key := r.Key()
	key.Date = date

	existing, err := s.Repo.FindByNaturalKey(ctx, s.DB, key)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", key, err)
	}
	if existing != nil && existing.ID != r.ID {
		if err := s.Repo.DeleteReschedule(ctx, s.DB, r.ID); err != nil {
			return "", fmt.Errorf("delete duplicate: %w", err)
		}
		return observability.OutcomeDeleted, nil
	}
	if _, err := s.Repo.UpdateReschedule(ctx, s.DB, r.ID, map[string]any{"date": date}); err != nil {
		return "", fmt.Errorf("update date: %w", err)
	}
	return observability.OutcomeUpdated, nil
}
