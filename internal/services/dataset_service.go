// Package services – DatasetService
//
// This file assembles the dataset behind the analysis views: every persisted
// record plus the baseline records whose natural key is not yet stored.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/internal/dedupe"
	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
)

// DatasetService reads the merged live and baseline dataset.
type DatasetService struct {
	DB       *gorm.DB
	Repo     RescheduleRepo
	Baseline BaselineSource
}

// Live returns every persisted record, most recent date first.
func (s *DatasetService) Live(ctx context.Context) ([]domain.Reschedule, error) {
	out, err := s.Repo.ListReschedules(ctx, s.DB, repo.ListOptions{OrderByDateDesc: true})
	if err != nil {
		return nil, fmt.Errorf("list live records: %w", err)
	}
	if out == nil {
		out = []domain.Reschedule{}
	}
	return out, nil
}

// Merged returns the union of live and baseline by natural key; live records
// win. A baseline that cannot be loaded degrades to the live set and is
// logged, since the store alone is still a usable view.
func (s *DatasetService) Merged(ctx context.Context) ([]domain.Reschedule, error) {
	live, err := s.Live(ctx)
	if err != nil {
		return nil, err
	}
	if s.Baseline == nil {
		return dedupe.Dedupe(live), nil
	}
	base, err := s.Baseline.Records(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("baseline unavailable; using live records only")
		return dedupe.Dedupe(live), nil
	}
	return dedupe.Merge(live, base), nil
}
