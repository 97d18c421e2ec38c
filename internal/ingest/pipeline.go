package ingest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
)

// DefaultSource is the workbook name the batch run looks for when no path
// is configured.
const DefaultSource = "ReagendamentoForm2025.xlsx"

// ErrSourceNotFound is returned when the workbook path does not exist.
var ErrSourceNotFound = errors.New("source file not found")

// Lookups are the distinct non-empty values of the selection fields, sorted
// by ordinal (case-sensitive) comparison.
type Lookups struct {
	Technicians []string `json:"technicians"`
	Products    []string `json:"products"`
	PartNames   []string `json:"partNames"`
	Reasons     []string `json:"reasons"`
}

// Result is the canonical dataset produced from one workbook.
type Result struct {
	Sheet   string
	Records []domain.Reschedule
	Lookups
	// BlankRows counts rows skipped because every cell was empty.
	BlankRows int
}

// Ingest reads the first sheet of the workbook at path and normalizes every
// row in order. Other sheets are ignored.
func Ingest(path string) (*Result, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultSource
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return ingestFile(f)
}

// IngestReader is Ingest for an already opened workbook stream.
func IngestReader(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return ingestFile(f)
}

func ingestFile(f *excelize.File) (*Result, error) {
	sheet, rows, blank, err := readFirstSheet(f)
	if err != nil {
		return nil, err
	}
	res := Build(rows)
	res.Sheet = sheet
	res.BlankRows = blank
	return res, nil
}

// Build normalizes rows in order and derives the lookup lists.
func Build(rows []Row) *Result {
	records := make([]domain.Reschedule, 0, len(rows))
	for i, row := range rows {
		records = append(records, NormalizeRow(row, i))
	}
	return &Result{Records: records, Lookups: CollectLookups(records)}
}

// CollectLookups derives the four selection lists from a dataset.
func CollectLookups(records []domain.Reschedule) Lookups {
	tech := make([]string, 0, len(records))
	prod := make([]string, 0, len(records))
	parts := make([]string, 0, len(records))
	reasons := make([]string, 0, len(records))
	for _, r := range records {
		tech = append(tech, r.Technician)
		prod = append(prod, r.Product)
		parts = append(parts, r.PartNameValue())
		reasons = append(reasons, r.ReasonCode)
	}
	return Lookups{
		Technicians: DistinctSorted(tech),
		Products:    DistinctSorted(prod),
		PartNames:   DistinctSorted(parts),
		Reasons:     DistinctSorted(reasons),
	}
}

// DistinctSorted returns the distinct non-empty values in ascending byte order.
func DistinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// readFirstSheet returns the data rows of the first sheet keyed by the header
// row. Rows with no non-empty cell are dropped and counted.
func readFirstSheet(f *excelize.File) (string, []Row, int, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "", nil, 0, errors.New("workbook has no sheets")
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet, nil, 0, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return sheet, nil, 0, nil
	}

	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	blank := 0
	for ri := 1; ri < len(raw); ri++ {
		row := make(Row, len(header))
		for ci, name := range header {
			if name == "" || ci >= len(raw[ri]) || raw[ri][ci] == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return sheet, nil, 0, err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return sheet, nil, 0, fmt.Errorf("cell %s: %w", cell, err)
			}
			row[name] = cellValue(typ, raw[ri][ci])
		}
		if len(row) == 0 {
			blank++
			continue
		}
		rows = append(rows, row)
	}
	return sheet, rows, blank, nil
}

// cellValue tags a raw cell by its stored type. Cells without an explicit
// type are numbers in OOXML; they fall back to text if they do not parse.
func cellValue(typ excelize.CellType, raw string) Value {
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(f)
		}
		return Text(raw)
	case excelize.CellTypeDate:
		if t, ok := parseISOCell(raw); ok {
			return Date(t)
		}
		return Text(raw)
	case excelize.CellTypeBool:
		if raw == "1" {
			return Text("TRUE")
		}
		return Text("FALSE")
	default:
		return Text(raw)
	}
}

var isoCellLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", isoLayout}

func parseISOCell(raw string) (time.Time, bool) {
	for _, layout := range isoCellLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
