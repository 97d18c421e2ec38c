// Package analytics shapes reschedule datasets for the dashboard and the
// analysis views: filtering, lookup lists, top-N rankings, time series and
// summary counters. Every function is pure and leaves its input untouched.
package analytics

import (
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/ingest"
)

// DefaultTopN is the ranking length used when a caller passes n <= 0.
const DefaultTopN = 10

// SummaryTopTechnicians is the ranking length used by Summarize.
const SummaryTopTechnicians = 5

// NoReasonLabel replaces an empty reason code in reason rankings.
const NoReasonLabel = "—"

var (
	ErrUnknownDimension   = errors.New("unknown dimension")
	ErrUnknownGranularity = errors.New("unknown granularity")
)

// Criteria narrows a dataset. Empty fields do not filter.
type Criteria struct {
	Search     string
	Technician string
	Product    string
	Reason     string
	Type       string
	From       string
	To         string
}

// IsZero reports whether c filters nothing.
func (c Criteria) IsZero() bool { return c == Criteria{} }

var folder = cases.Fold()

func fold(s string) string { return folder.String(s) }

// Filter returns the records matching c, in input order. Search is a
// case-insensitive substring match over the work order, SKU, product,
// technician and part name. Selections are exact; date bounds are inclusive.
func Filter(records []domain.Reschedule, c Criteria) []domain.Reschedule {
	out := make([]domain.Reschedule, 0, len(records))
	if c.IsZero() {
		return append(out, records...)
	}
	q := fold(strings.TrimSpace(c.Search))
	for _, r := range records {
		if c.Technician != "" && r.Technician != c.Technician {
			continue
		}
		if c.Product != "" && r.Product != c.Product {
			continue
		}
		if c.Reason != "" && r.ReasonCode != c.Reason {
			continue
		}
		if c.Type != "" && r.Type != c.Type {
			continue
		}
		if !inRange(r.Date, c.From, c.To) {
			continue
		}
		if q != "" && !matches(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r domain.Reschedule, q string) bool {
	for _, s := range []string{r.WorkOrder, r.StockKeepingID, r.Product, r.Technician, r.PartNameValue()} {
		if strings.Contains(fold(s), q) {
			return true
		}
	}
	return false
}

func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// Lookups extends the ingestion lookup lists with the record types in use.
type Lookups struct {
	ingest.Lookups
	Types []string `json:"types"`
}

// BuildLookups returns the distinct non-empty selection values of records.
func BuildLookups(records []domain.Reschedule) Lookups {
	types := make([]string, 0, len(records))
	for _, r := range records {
		types = append(types, r.Type)
	}
	return Lookups{
		Lookups: ingest.CollectLookups(records),
		Types:   ingest.DistinctSorted(types),
	}
}

// Dimension is a field records can be ranked by.
type Dimension string

const (
	DimTechnician Dimension = "technician"
	DimPart       Dimension = "part"
	DimSKU        Dimension = "sku"
	DimProduct    Dimension = "product"
	DimReason     Dimension = "reason"
)

// Dimensions lists every supported ranking dimension.
var Dimensions = []Dimension{DimTechnician, DimPart, DimSKU, DimProduct, DimReason}

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, nil
		}
	}
	return "", ErrUnknownDimension
}

// label returns the ranking label of r, or false when r does not count.
func (d Dimension) label(r domain.Reschedule) (string, bool) {
	switch d {
	case DimTechnician:
		return r.Technician, true
	case DimPart:
		name := r.PartNameValue()
		return name, name != ""
	case DimSKU:
		return r.StockKeepingID, true
	case DimProduct:
		return r.Product, true
	case DimReason:
		if r.ReasonCode == "" {
			return NoReasonLabel, true
		}
		return r.ReasonCode, true
	}
	return "", false
}

// Count is one ranked label.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Top ranks the labels of dimension d by frequency and keeps the first n.
// Ties are ordered by label. n <= 0 means DefaultTopN.
func Top(records []domain.Reschedule, d Dimension, n int) []Count {
	if n <= 0 {
		n = DefaultTopN
	}
	counts := tally(records, d)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Matching returns the records whose dimension-d label equals label.
func Matching(records []domain.Reschedule, d Dimension, label string) []domain.Reschedule {
	out := make([]domain.Reschedule, 0)
	for _, r := range records {
		if l, ok := d.label(r); ok && l == label {
			out = append(out, r)
		}
	}
	return out
}

func tally(records []domain.Reschedule, d Dimension) []Count {
	byLabel := make(map[string]int)
	for _, r := range records {
		if l, ok := d.label(r); ok {
			byLabel[l]++
		}
	}
	out := make([]Count, 0, len(byLabel))
	for l, n := range byLabel {
		out = append(out, Count{Label: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Granularity is the bucket size of a time series.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByMonth Granularity = "month"
	ByYear  Granularity = "year"
)

// ParseGranularity validates a granularity name; blank means ByMonth.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return ByMonth, nil
	case ByDay, ByMonth, ByYear:
		return g, nil
	}
	return "", ErrUnknownGranularity
}

func (g Granularity) bucket(date string) string {
	switch g {
	case ByYear:
		if len(date) >= 4 {
			return date[:4]
		}
	case ByMonth:
		if len(date) >= 7 {
			return date[:7]
		}
	}
	return date
}

// Point is one bucket of a time series.
type Point struct {
	X string `json:"x"`
	Y int    `json:"y"`
}

// Series counts records per date bucket within [from, to] and returns the
// points in ascending bucket order. Records without a date are ignored.
func Series(records []domain.Reschedule, g Granularity, from, to string) []Point {
	byBucket := make(map[string]int)
	for _, r := range records {
		if r.Date == "" || !inRange(r.Date, from, to) {
			continue
		}
		byBucket[g.bucket(r.Date)]++
	}
	out := make([]Point, 0, len(byBucket))
	for x, y := range byBucket {
		out = append(out, Point{X: x, Y: y})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// Summary holds the dashboard counters.
type Summary struct {
	Total          int     `json:"total"`
	Rescheduled    int     `json:"rescheduled"`
	Pending        int     `json:"pending"`
	Completed      int     `json:"completed"`
	ByReason       []Count `json:"byReason"`
	TopTechnicians []Count `json:"topTechnicians"`
}

// Summarize computes the dashboard counters. Pending records carry the
// pending reason code; everything else counts as completed.
func Summarize(records []domain.Reschedule) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.HadReschedule {
			s.Rescheduled++
		}
		if r.ReasonCode == domain.ReasonPending {
			s.Pending++
		}
	}
	s.Completed = s.Total - s.Pending
	s.ByReason = tally(records, DimReason)
	s.TopTechnicians = Top(records, DimTechnician, SummaryTopTechnicians)
	return s
}
