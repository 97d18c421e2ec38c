package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// RescheduleService defines CRUD over persisted records.
type RescheduleService interface {
	Create(ctx context.Context, in services.RescheduleInput) (*domain.Reschedule, error)
	Get(ctx context.Context, id string) (*domain.Reschedule, error)
	Update(ctx context.Context, id string, in services.RescheduleInput) (*domain.Reschedule, error)
	Delete(ctx context.Context, id string) error
	// List returns every record, most recent date first.
	List(ctx context.Context) ([]domain.Reschedule, error)
	// ListPage returns one page of records and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Reschedule, int64, error)
}

// DatasetService reads the datasets behind the analysis endpoints.
type DatasetService interface {
	Live(ctx context.Context) ([]domain.Reschedule, error)
	// Merged is the live store plus baseline records not yet stored.
	Merged(ctx context.Context) ([]domain.Reschedule, error)
}

// ReconcileService compares the store with the baseline and imports.
type ReconcileService interface {
	Status(ctx context.Context) (*services.Status, error)
	ImportFromBaseline(ctx context.Context) (int64, error)
	Seed(ctx context.Context) (int64, error)
}

// MaintenanceService runs repair jobs over persisted records.
type MaintenanceService interface {
	BackfillDates(ctx context.Context) (services.BackfillReport, error)
}

// Store exposes the persistence the transport needs directly: list stats
// for ETags and stored outcomes of idempotent actions.
type Store interface {
	ReschedulesStats(ctx context.Context) (count int64, maxUpdatedAt *time.Time, err error)
	GetIdempotency(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, scope, key string, inserted int64, status int, ttl time.Duration) (*domain.Idempotency, error)
}

//
// Handler wiring
//

// Options tunes the handlers. The zero value is usable.
type Options struct {
	// Store enables list ETags and idempotent replays; nil disables both.
	Store Store
	// IdempotencyTTL is how long a completed action is replayed (default 24h).
	IdempotencyTTL time.Duration
	// DefaultPageSize and MaxPageSize bound list paging (defaults 100 and 5000).
	DefaultPageSize int
	MaxPageSize     int
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	resSvc   RescheduleService
	dataSvc  DatasetService
	recSvc   ReconcileService
	maintSvc MaintenanceService
	opts     Options
}

// New constructs Handlers bound to the given services.
func New(res RescheduleService, data DatasetService, rec ReconcileService, maint MaintenanceService, opts Options) *Handlers {
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = 24 * time.Hour
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 100
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 5000
	}
	if opts.DefaultPageSize > opts.MaxPageSize {
		opts.DefaultPageSize = opts.MaxPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handlers{resSvc: res, dataSvc: data, recSvc: rec, maintSvc: maint, opts: opts}
}
