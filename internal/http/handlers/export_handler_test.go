package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tbourn/go-reschedule-backend/internal/baseline"
	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/ingest"
)

func exportRows(t *testing.T, body []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(ingest.ExportSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	return rows
}

func TestExportReschedules(t *testing.T) {
	f := newFixture(t, baseline.NewStatic([]domain.Reschedule{rec("9", "Z", "2025-05-05", "VCP", "Dora")}))
	seedLive(t, f.db,
		rec("1", "A", "2025-01-10", "VCP", "Ana"),
		rec("2", "B", "2025-01-20", "NTN", "Bruno"),
	)

	w := do(f.r, http.MethodGet, "/export/reschedules.xlsx", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("content-type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="reschedules-20250314.xlsx"` {
		t.Fatalf("content-disposition = %q", cd)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
		t.Fatalf("Content-Disposition must be exposed")
	}
	rows := exportRows(t, w.Body.Bytes())
	if len(rows) != 3 || rows[1][0] != "2" || rows[2][0] != "1" {
		t.Fatalf("live export rows = %v", rows)
	}

	rows = exportRows(t, do(f.r, http.MethodGet, "/export/reschedules.xlsx?merged=1&technician=Dora", nil, nil).Body.Bytes())
	if len(rows) != 2 || rows[1][0] != "9" {
		t.Fatalf("merged filtered rows = %v", rows)
	}
}
