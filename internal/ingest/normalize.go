package ingest

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
)

// Row is one spreadsheet line keyed by its raw header text.
type Row map[string]Value

// Field names a logical record field read from a row.
type Field string

const (
	FieldWorkOrder     Field = "workOrder"
	FieldSKU           Field = "stockKeepingId"
	FieldProduct       Field = "product"
	FieldTechnician    Field = "technician"
	FieldDate          Field = "date"
	FieldHadReschedule Field = "hadReschedule"
	FieldReason        Field = "reasonCode"
	FieldPartCode      Field = "partCode"
	FieldType          Field = "type"
	FieldPartName      Field = "partName"
)

// columnAliases lists, per field, the header spellings seen in the source
// workbooks. The canonical name comes first; order is lookup priority.
var columnAliases = map[Field][]string{
	FieldWorkOrder:     {"OS", "Ordem de Serviço"},
	FieldSKU:           {"SKU", "Código SKU"},
	FieldProduct:       {"PRODUTO", "Produto"},
	FieldTechnician:    {"TÉCNICO", "TECNICO", "Técnico"},
	FieldDate:          {"Data", "Data "},
	FieldHadReschedule: {"Teve Reagendamento?", "Teve Reagendamento"},
	FieldReason:        {"Motivo?", "Motivo"},
	FieldPartCode:      {"Peça Código", "Peça? Código? ", "Código da Peça"},
	FieldType:          {"Tipo (Estética ou Funcional)?", "Tipo"},
	FieldPartName:      {"Nome da Peça", "Nome da Peça? "},
}

// affirmative is the only hadReschedule value that reads as true.
const affirmative = "SIM"

// Lookup returns the first present cell among candidates.
//
// Each candidate is first tried verbatim. When none match exactly the
// candidates are retried against folded headers, which ignore case, accents,
// question marks and runs of whitespace.
func (r Row) Lookup(candidates ...string) Value {
	for _, c := range candidates {
		if v, ok := r[c]; ok && !v.IsAbsent() {
			return v
		}
	}

	folded := r.foldedIndex()
	for _, c := range candidates {
		if v, ok := folded[FoldHeader(c)]; ok && !v.IsAbsent() {
			return v
		}
	}
	return Absent
}

// Get resolves a logical field through its alias list.
func (r Row) Get(f Field) Value { return r.Lookup(columnAliases[f]...) }

// foldedIndex maps folded header → cell. Headers are visited in sorted order
// so that collisions resolve the same way on every run.
func (r Row) foldedIndex() map[string]Value {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]Value, len(keys))
	for _, k := range keys {
		v := r[k]
		if v.IsAbsent() {
			continue
		}
		fk := FoldHeader(k)
		if _, seen := out[fk]; !seen {
			out[fk] = v
		}
	}
	return out
}

// FoldHeader reduces a header to a comparison form: accents stripped,
// upper case, "?" removed and whitespace collapsed.
func FoldHeader(s string) string {
	s = strings.ReplaceAll(stripAccents(s), "?", " ")
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ClassifyType maps free text to AESTHETIC when it mentions "estética" in any
// spelling (or the English "aesthetic"), and to FUNCTIONAL otherwise.
func ClassifyType(raw string) string {
	up := strings.ToUpper(stripAccents(raw))
	if strings.Contains(up, "ESTETIC") || strings.Contains(up, "AESTHETIC") {
		return domain.TypeAesthetic
	}
	return domain.TypeFunctional
}

// IsAffirmative reports whether a yes/no cell holds the affirmative token.
func IsAffirmative(raw string) bool {
	return strings.ToUpper(strings.TrimSpace(raw)) == affirmative
}

// NormalizeRow maps one raw row to the canonical record. rowIndex is 0-based;
// the record ID becomes rowIndex+1 and lives in the baseline id space only.
func NormalizeRow(row Row, rowIndex int) domain.Reschedule {
	return domain.Reschedule{
		ID:             strconv.Itoa(rowIndex + 1),
		WorkOrder:      row.Get(FieldWorkOrder).Trimmed(),
		StockKeepingID: row.Get(FieldSKU).Trimmed(),
		Product:        row.Get(FieldProduct).Trimmed(),
		Technician:     row.Get(FieldTechnician).Trimmed(),
		Date:           NormalizeDate(row.Get(FieldDate)),
		HadReschedule:  IsAffirmative(row.Get(FieldHadReschedule).String()),
		ReasonCode:     row.Get(FieldReason).Trimmed(),
		PartCode:       domain.OptionalString(row.Get(FieldPartCode).String()),
		Type:           ClassifyType(row.Get(FieldType).String()),
		PartName:       domain.OptionalString(row.Get(FieldPartName).String()),
	}
}
