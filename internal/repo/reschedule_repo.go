// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Reschedule model.
//
// All functions are context-aware and accept a *gorm.DB handle, so they can
// run inside a transaction. They follow the "thin repository" approach: no
// business logic, only persistence and query composition.
//
// Error semantics:
//   - GetReschedule, UpdateReschedule and DeleteReschedule return ErrNotFound
//     when the id does not exist.
//   - FindByNaturalKey returns (nil, nil) when nothing matches.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// DefaultBatchSize is the insert batch used by CreateReschedules when the
// caller passes a non-positive size. SQLite caps bound parameters per
// statement, so very large batches fail.
const DefaultBatchSize = 200

// ListOptions shapes ListReschedules. Zero Limit means no limit.
type ListOptions struct {
	OrderByDateDesc bool
	Limit           int
	Offset          int
}

// CreateReschedule inserts r with a fresh UUID. Any id already on r is
// replaced; ingestion ids never reach the store.
func CreateReschedule(ctx context.Context, db *gorm.DB, r *domain.Reschedule) (*domain.Reschedule, error) {
	rec := *r
	rec.ID = uuid.NewString()
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	if rec.Type == "" {
		rec.Type = domain.TypeFunctional
	}
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateReschedules bulk-inserts records in batches of batchSize and returns
// how many rows were written. Empty input writes nothing and returns 0.
// The input slice is not modified.
func CreateReschedules(ctx context.Context, db *gorm.DB, records []domain.Reschedule, batchSize int) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	now := time.Now().UTC()
	rows := make([]domain.Reschedule, len(records))
	for i, r := range records {
		r.ID = uuid.NewString()
		r.CreatedAt, r.UpdatedAt = now, now
		if r.Type == "" {
			r.Type = domain.TypeFunctional
		}
		rows[i] = r
	}

	res := db.WithContext(ctx).CreateInBatches(rows, batchSize)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ListReschedules returns records shaped by opts. Ties on date fall back to
// creation time so pages stay stable.
func ListReschedules(ctx context.Context, db *gorm.DB, opts ListOptions) ([]domain.Reschedule, error) {
	q := db.WithContext(ctx).Model(&domain.Reschedule{})
	if opts.OrderByDateDesc {
		q = q.Order("date desc").Order("created_at desc")
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	var out []domain.Reschedule
	err := q.Find(&out).Error
	return out, err
}

// CountReschedules returns the total number of persisted records.
func CountReschedules(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Reschedule{}).Count(&total).Error
	return total, err
}

// GetReschedule fetches one record by id.
func GetReschedule(ctx context.Context, db *gorm.DB, id string) (*domain.Reschedule, error) {
	var r domain.Reschedule
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// FindByNaturalKey returns the first record holding key, or (nil, nil).
func FindByNaturalKey(ctx context.Context, db *gorm.DB, key domain.NaturalKey) (*domain.Reschedule, error) {
	var r domain.Reschedule
	err := db.WithContext(ctx).
		Where("work_order = ? AND stock_keeping_id = ? AND reason_code = ? AND date = ?",
			key.WorkOrder, key.StockKeepingID, key.ReasonCode, key.Date).
		Order("created_at asc").
		Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReschedule applies fields (column name → value) to the record with id
// and returns the updated row. updated_at is always bumped.
func UpdateReschedule(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Reschedule, error) {
	set := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	res := db.WithContext(ctx).
		Model(&domain.Reschedule{}).
		Where("id = ?", id).
		Updates(set)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetReschedule(ctx, db, id)
}

// DeleteReschedule removes the record with id.
func DeleteReschedule(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reschedule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
