// Package domain defines the persistence model for service-rescheduling
// records. The types are mapped with GORM and shared by the ingestion,
// reconciliation, repository, and HTTP layers.
package domain

import (
	"strings"
	"time"
)

// Type values a record is classified into at ingestion/validation time.
const (
	TypeFunctional = "FUNCTIONAL"
	TypeAesthetic  = "AESTHETIC"
)

// ReasonPending is the reason code the dashboard counts as "pending"
// (no part available yet).
const ReasonPending = "NTN"

// Reschedule is one service-rescheduling record.
//
// Fields:
//   - ID: store-generated UUID for persisted rows; for baseline rows produced by
//     ingestion it is the 1-based row position. The two id spaces never mix:
//     ids are dropped before baseline rows are written to the store.
//   - WorkOrder / StockKeepingID: opaque identifiers kept as display strings,
//     even when the spreadsheet held them as numbers.
//   - Date: canonical YYYY-MM-DD string; default sort key (descending).
//   - ReasonCode: free text, usually VCP, NTN or ENL. Unknown codes are kept.
//   - Type: FUNCTIONAL or AESTHETIC after normalization, editable afterwards.
//   - PartCode / PartName: optional, NULL when blank.
type Reschedule struct {
	ID             string    `json:"id"             gorm:"type:char(36);primaryKey"`
	WorkOrder      string    `json:"workOrder"      gorm:"type:varchar(64);not null;index:idx_reschedule_natural_key,priority:1"`
	StockKeepingID string    `json:"stockKeepingId" gorm:"type:varchar(64);not null;index:idx_reschedule_natural_key,priority:2"`
	Product        string    `json:"product"        gorm:"type:varchar(255);not null;default:''"`
	Technician     string    `json:"technician"     gorm:"type:varchar(255);not null;default:''"`
	Date           string    `json:"date"           gorm:"type:varchar(32);not null;index;index:idx_reschedule_natural_key,priority:3"`
	HadReschedule  bool      `json:"hadReschedule"  gorm:"not null;default:false"`
	ReasonCode     string    `json:"reasonCode"     gorm:"type:varchar(32);not null;default:'';index:idx_reschedule_natural_key,priority:4"`
	PartCode       *string   `json:"partCode"       gorm:"type:varchar(128)"`
	Type           string    `json:"type"           gorm:"type:varchar(16);not null;default:'FUNCTIONAL'"`
	PartName       *string   `json:"partName"       gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Reschedule.
func (Reschedule) TableName() string { return "reschedules" }

// NaturalKey is the 4-tuple identity used when comparing two datasets.
//
// The key deliberately leaves out type, part, product and technician, so two
// visits on the same work order, SKU, date and reason are indistinguishable.
// It is unresolved whether that is intended (one visit noting several parts)
// or a modeling gap; callers must not assume it is a storage constraint.
type NaturalKey struct {
	WorkOrder      string
	StockKeepingID string
	Date           string
	ReasonCode     string
}

// keySeparator joins key parts in String. Parts are escaped so that a
// separator inside a field cannot make two keys render alike.
const keySeparator = "|"

var keyEscaper = strings.NewReplacer(`\`, `\\`, keySeparator, `\`+keySeparator)

// String renders the key as a single string, distinct keys giving distinct
// strings. Comparisons should use the struct itself, which is comparable.
func (k NaturalKey) String() string {
	return strings.Join([]string{
		keyEscaper.Replace(k.WorkOrder),
		keyEscaper.Replace(k.StockKeepingID),
		keyEscaper.Replace(k.Date),
		keyEscaper.Replace(k.ReasonCode),
	}, keySeparator)
}

// Key returns the record's natural key.
func (r Reschedule) Key() NaturalKey {
	return NaturalKey{
		WorkOrder:      r.WorkOrder,
		StockKeepingID: r.StockKeepingID,
		Date:           r.Date,
		ReasonCode:     r.ReasonCode,
	}
}

// NaturalKey returns the record's natural key as a string.
func (r Reschedule) NaturalKey() string { return r.Key().String() }

// PartCodeValue returns the part code or "" when absent.
func (r Reschedule) PartCodeValue() string {
	if r.PartCode == nil {
		return ""
	}
	return *r.PartCode
}

// PartNameValue returns the part name or "" when absent.
func (r Reschedule) PartNameValue() string {
	if r.PartName == nil {
		return ""
	}
	return *r.PartName
}

// OptionalString returns nil for blank input and a pointer to the trimmed
// value otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
