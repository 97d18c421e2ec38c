// Package services – RescheduleService
//
// This file implements interactive CRUD over persisted reschedule records.
// Input is normalized (trimmed, date canonicalized, type classified) and then
// validated with go-playground/validator before anything reaches the store.
// Failures come back as *ValidationError listing every failed field.
package services

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/ingest"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
)

// RescheduleRepo defines the repository contract required by the services in
// this package. The router adapts the repo package's free functions to it.
type RescheduleRepo interface {
	CreateReschedule(ctx context.Context, db *gorm.DB, r *domain.Reschedule) (*domain.Reschedule, error)
	CreateReschedules(ctx context.Context, db *gorm.DB, records []domain.Reschedule, batchSize int) (int64, error)
	ListReschedules(ctx context.Context, db *gorm.DB, opts repo.ListOptions) ([]domain.Reschedule, error)
	CountReschedules(ctx context.Context, db *gorm.DB) (int64, error)
	GetReschedule(ctx context.Context, db *gorm.DB, id string) (*domain.Reschedule, error)
	FindByNaturalKey(ctx context.Context, db *gorm.DB, key domain.NaturalKey) (*domain.Reschedule, error)
	UpdateReschedule(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Reschedule, error)
	DeleteReschedule(ctx context.Context, db *gorm.DB, id string) error
}

// RescheduleInput is the create/update payload.
type RescheduleInput struct {
	WorkOrder      string `json:"workOrder"      validate:"required,max=64"`
	StockKeepingID string `json:"stockKeepingId" validate:"required,max=64"`
	Product        string `json:"product"        validate:"max=255"`
	Technician     string `json:"technician"     validate:"required,max=255"`
	Date           string `json:"date"           validate:"required,isodate"`
	HadReschedule  bool   `json:"hadReschedule"`
	ReasonCode     string `json:"reasonCode"     validate:"required,max=32"`
	PartCode       string `json:"partCode"       validate:"max=128"`
	Type           string `json:"type"           validate:"oneof=FUNCTIONAL AESTHETIC"`
	PartName       string `json:"partName"       validate:"max=255"`
}

// normalize trims every field, canonicalizes the date and classifies type.
func (in RescheduleInput) normalize() RescheduleInput {
	out := RescheduleInput{
		WorkOrder:      strings.TrimSpace(in.WorkOrder),
		StockKeepingID: strings.TrimSpace(in.StockKeepingID),
		Product:        strings.TrimSpace(in.Product),
		Technician:     strings.TrimSpace(in.Technician),
		Date:           ingest.NormalizeDateString(strings.TrimSpace(in.Date)),
		HadReschedule:  in.HadReschedule,
		ReasonCode:     strings.TrimSpace(in.ReasonCode),
		PartCode:       strings.TrimSpace(in.PartCode),
		PartName:       strings.TrimSpace(in.PartName),
		Type:           domain.TypeFunctional,
	}
	if t := strings.TrimSpace(in.Type); t != "" {
		out.Type = ingest.ClassifyType(t)
	}
	return out
}

func (in RescheduleInput) record() domain.Reschedule {
	return domain.Reschedule{
		WorkOrder:      in.WorkOrder,
		StockKeepingID: in.StockKeepingID,
		Product:        in.Product,
		Technician:     in.Technician,
		Date:           in.Date,
		HadReschedule:  in.HadReschedule,
		ReasonCode:     in.ReasonCode,
		PartCode:       domain.OptionalString(in.PartCode),
		Type:           in.Type,
		PartName:       domain.OptionalString(in.PartName),
	}
}

// columns maps the input onto store columns for a full update.
func (in RescheduleInput) columns() map[string]any {
	r := in.record()
	return map[string]any{
		"work_order":       r.WorkOrder,
		"stock_keeping_id": r.StockKeepingID,
		"product":          r.Product,
		"technician":       r.Technician,
		"date":             r.Date,
		"had_reschedule":   r.HadReschedule,
		"reason_code":      r.ReasonCode,
		"part_code":        r.PartCode,
		"type":             r.Type,
		"part_name":        r.PartName,
	}
}

var ruleMessages = map[string]string{
	"required": "is required",
	"max":      "is too long",
	"isodate":  "must be a valid date as YYYY-MM-DD, DD/MM/YYYY or D/M/YYYY",
	"oneof":    "must be FUNCTIONAL or AESTHETIC",
}

// inputValidator is shared; validator.Validate is safe for concurrent use.
var inputValidator = newValidator()

// newValidator builds a validator that reports JSON field names and knows the
// isodate rule.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return ingest.IsCalendarDate(fl.Field().String())
	})
	return v
}

// toValidationError converts validator output to the service error type.
func toValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &ValidationError{Issues: make([]FieldIssue, 0, len(ves))}
	for _, fe := range ves {
		msg, ok := ruleMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		out.Issues = append(out.Issues, FieldIssue{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
	}
	return out
}

// RescheduleService provides CRUD over persisted records.
type RescheduleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the reschedule repository used by this service.
	Repo RescheduleRepo

	// MaxPageSize caps ListPage page sizes.
	MaxPageSize int
	// DefaultPageSize applies when the caller passes a non-positive size.
	DefaultPageSize int
}

// NewRescheduleService constructs a RescheduleService with default paging.
func NewRescheduleService(db *gorm.DB, r RescheduleRepo) *RescheduleService {
	return &RescheduleService{
		DB:              db,
		Repo:            r,
		MaxPageSize:     5000,
		DefaultPageSize: 100,
	}
}

// Validate normalizes in and checks it. It returns the normalized input.
func (s *RescheduleService) Validate(in RescheduleInput) (RescheduleInput, error) {
	n := in.normalize()
	if err := inputValidator.Struct(n); err != nil {
		return n, toValidationError(err)
	}
	return n, nil
}

// Create validates and inserts a new record.
func (s *RescheduleService) Create(ctx context.Context, in RescheduleInput) (*domain.Reschedule, error) {
	n, err := s.Validate(in)
	if err != nil {
		return nil, err
	}
	rec := n.record()
	return s.Repo.CreateReschedule(ctx, s.DB, &rec)
}

// Get returns one record by id.
func (s *RescheduleService) Get(ctx context.Context, id string) (*domain.Reschedule, error) {
	r, err := s.Repo.GetReschedule(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRescheduleNotFound
	}
	return r, err
}

// Update validates in and replaces every editable field of record id.
// Validation runs first, so a bad payload for a missing id reports the
// validation failure.
func (s *RescheduleService) Update(ctx context.Context, id string, in RescheduleInput) (*domain.Reschedule, error) {
	n, err := s.Validate(in)
	if err != nil {
		return nil, err
	}
	r, err := s.Repo.UpdateReschedule(ctx, s.DB, id, n.columns())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRescheduleNotFound
	}
	return r, err
}

// Delete removes record id.
func (s *RescheduleService) Delete(ctx context.Context, id string) error {
	err := s.Repo.DeleteReschedule(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrRescheduleNotFound
	}
	return err
}

// List returns every persisted record, most recent date first.
func (s *RescheduleService) List(ctx context.Context) ([]domain.Reschedule, error) {
	out, err := s.Repo.ListReschedules(ctx, s.DB, repo.ListOptions{OrderByDateDesc: true})
	if out == nil && err == nil {
		out = []domain.Reschedule{}
	}
	return out, err
}

// ListPage returns one page (1-based) of records, most recent date first,
// plus the total count. pageSize is clamped to [1, MaxPageSize].
func (s *RescheduleService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Reschedule, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.DefaultPageSize
		if pageSize <= 0 {
			pageSize = 100
		}
	}
	if s.MaxPageSize > 0 && pageSize > s.MaxPageSize {
		pageSize = s.MaxPageSize
	}

	total, err := s.Repo.CountReschedules(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Reschedule{}, 0, nil
	}

	items, err := s.Repo.ListReschedules(ctx, s.DB, repo.ListOptions{
		OrderByDateDesc: true,
		Limit:           pageSize,
		Offset:          (page - 1) * pageSize,
	})
	if items == nil && err == nil {
		items = []domain.Reschedule{}
	}
	return items, total, err
}
