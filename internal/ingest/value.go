// Package ingest turns a spreadsheet export of service-rescheduling records
// into the canonical record shape.
//
// Cells enter the package as a tagged Value (text, number, date or absent)
// and are resolved by NormalizeDate and NormalizeRow, so nothing downstream
// ever sees a raw spreadsheet value. The package does not log; callers decide
// what to report.
package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Kind tags the representation a spreadsheet cell arrived in.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "absent"
	}
}

// Value is one raw cell. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Time   time.Time
}

// Absent is the zero Value.
var Absent = Value{}

// Text wraps a string cell.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Date wraps a native date cell.
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// IsAbsent reports whether the cell is missing.
func (v Value) IsAbsent() bool { return v.Kind == KindAbsent }

// String coerces the cell to text. Whole numbers print without a decimal
// part, so a work order held as 701424523 reads back as "701424523".
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindDate:
		return v.Time.Format(isoLayout)
	default:
		return ""
	}
}

// Trimmed is String with surrounding whitespace removed.
func (v Value) Trimmed() string { return strings.TrimSpace(v.String()) }
