package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/tbourn/go-reschedule-backend/internal/baseline"
	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/http/middleware"
	"github.com/tbourn/go-reschedule-backend/internal/services"
)

func countRows(t *testing.T, f *fixture) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&domain.Reschedule{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestReconcile_StatusThenImport(t *testing.T) {
	base := []domain.Reschedule{
		rec("1", "A", "2025-01-10", "VCP", "Ana"),
		rec("2", "B", "2025-01-20", "NTN", "Bruno"),
		rec("2", "B", "2025-01-20", "NTN", "Bruno"),
	}
	f := newFixture(t, baseline.NewStatic(base))
	seedLive(t, f.db, base[0])

	st := decode[services.Status](t, do(f.r, http.MethodGet, "/reconcile", nil, nil))
	if st.LiveCount != 1 || st.BaselineCount != 3 || !st.Ready || !st.NeedsImport || st.Missing != 1 {
		t.Fatalf("status = %+v", st)
	}
	if countRows(t, f) != 1 {
		t.Fatalf("status must not write")
	}

	w := do(f.r, http.MethodPost, "/reconcile/import", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("import: %d %s", w.Code, w.Body.String())
	}
	if got := decode[ImportResponse](t, w); got.Inserted != 1 || got.Replayed {
		t.Fatalf("import = %+v", got)
	}

	st = decode[services.Status](t, do(f.r, http.MethodGet, "/reconcile", nil, nil))
	if st.Missing != 0 || st.LiveCount != 2 {
		t.Fatalf("after import = %+v", st)
	}
}

func TestImportMissing_IdempotentReplay(t *testing.T) {
	f := newFixture(t, baseline.NewStatic([]domain.Reschedule{
		rec("1", "A", "2025-01-10", "VCP", "Ana"),
		rec("2", "B", "2025-01-20", "NTN", "Bruno"),
	}))
	hdr := map[string]string{middleware.HeaderIdempotencyKey: "import-2025-03-14"}

	first := do(f.r, http.MethodPost, "/reconcile/import", nil, hdr)
	if first.Code != http.StatusOK || decode[ImportResponse](t, first).Inserted != 2 {
		t.Fatalf("first: %d %s", first.Code, first.Body.String())
	}

	// Delete one row: a real re-run would import it again, a replay must not.
	var one domain.Reschedule
	f.db.First(&one)
	f.db.Delete(&one)

	again := do(f.r, http.MethodPost, "/reconcile/import", nil, hdr)
	if again.Code != http.StatusOK || again.Header().Get(HeaderReplayed) != "true" {
		t.Fatalf("replay: %d headers=%v", again.Code, again.Header())
	}
	if got := decode[ImportResponse](t, again); got.Inserted != 2 || !got.Replayed {
		t.Fatalf("replay body = %+v", got)
	}
	if countRows(t, f) != 1 {
		t.Fatalf("replay must not insert")
	}

	// The same key on another route is a different scope.
	w := do(f.r, http.MethodPost, "/seed", nil, hdr)
	if w.Code != http.StatusOK || w.Header().Get(HeaderReplayed) != "" {
		t.Fatalf("seed with reused key: %d %v", w.Code, w.Header())
	}

	if w := do(f.r, http.MethodPost, "/reconcile/import", nil, map[string]string{middleware.HeaderIdempotencyKey: "bad key!"}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid key: %d", w.Code)
	}
}

func TestSeed_ErrorsMapped(t *testing.T) {
	f := newFixture(t, emptyBaseline())
	w := do(f.r, http.MethodPost, "/seed", nil, nil)
	if w.Code != http.StatusConflict || decode[ErrorResponse](t, w).Code != ErrCodeNothingToSeed {
		t.Fatalf("empty baseline: %d %s", w.Code, w.Body.String())
	}

	f = newFixture(t, failingBaseline{})
	for _, path := range []string{"/seed", "/reconcile/import"} {
		w = do(f.r, http.MethodPost, path, nil, nil)
		if w.Code != http.StatusServiceUnavailable || decode[ErrorResponse](t, w).Code != ErrCodeBaselineUnavailable {
			t.Fatalf("%s: %d %s", path, w.Code, w.Body.String())
		}
	}
	w = do(f.r, http.MethodGet, "/reconcile", nil, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status with missing baseline: %d", w.Code)
	}
}

func TestNormalizeDates(t *testing.T) {
	f := newFixture(t, emptyBaseline())
	seedLive(t, f.db,
		rec("1", "A", "45659", "VCP", "Ana"),
		rec("2", "B", "2025-01-03", "VCP", "Ana"),
	)

	w := do(f.r, http.MethodPost, "/maintenance/normalize-dates", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d %s", w.Code, w.Body.String())
	}
	rep := decode[services.BackfillReport](t, w)
	if rep.Total != 2 || rep.Normalized != 1 || rep.Updated != 1 || rep.Failed != 0 {
		t.Fatalf("report = %+v", rep)
	}

	h := New(nil, nil, nil, stubMaint{err: errors.New("db down")}, Options{})
	w = do(mount(h, nil), http.MethodPost, "/maintenance/normalize-dates", nil, nil)
	if w.Code != http.StatusInternalServerError || decode[ErrorResponse](t, w).Code != ErrCodeBackfillFailed {
		t.Fatalf("failure: %d %s", w.Code, w.Body.String())
	}
}
