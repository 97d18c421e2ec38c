package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-reschedule-backend/internal/baseline"
	"github.com/tbourn/go-reschedule-backend/internal/config"
	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/http/handlers"
	"github.com/tbourn/go-reschedule-backend/internal/http/middleware"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:routerdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     100,
		RateBurst:   50,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false, HSTSMaxAge: 0},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
		Data: config.DataConfig{
			ImportBatchSize: 2,
			MaxPageSize:     10,
			DefaultPageSize: 5,
		},
		IdempotencyTTL: time.Hour,
	}
}

func testBaseline() *baseline.Provider {
	return baseline.NewStatic([]domain.Reschedule{
		{WorkOrder: "1", StockKeepingID: "A", Technician: "Ana", Date: "2025-01-10", ReasonCode: "VCP", Type: domain.TypeFunctional},
		{WorkOrder: "2", StockKeepingID: "B", Technician: "Bruno", Date: "2025-02-10", ReasonCode: domain.ReasonPending, Type: domain.TypeAesthetic},
		{WorkOrder: "3", StockKeepingID: "C", Technician: "Ana", Date: "2025-02-11", Type: domain.TypeFunctional},
	})
}

func newEngine(t *testing.T, cfg config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)
	RegisterRoutes(r, db, testBaseline(), cfg)
	return r, db
}

func serve(r http.Handler, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	r, _ := newEngine(t, testConfig())

	// /health works
	w := serve(r, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = serve(r, http.MethodGet, "/metrics", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "reschedule_rows_ingested_total") {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404 with the error envelope
	w = serve(r, http.MethodGet, "/nope", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}
	var env handlers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil || env.Code != handlers.ErrCodeNotFound || env.RequestID == "" {
		t.Fatalf("404 envelope = %+v (%v)", env, err)
	}

	// NoMethod → 405 (POST /health)
	w = serve(r, http.MethodPost, "/health", nil, nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}

	// Swagger is off by default.
	if w = serve(r, http.MethodGet, "/swagger/index.html", nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger must be disabled, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := testConfig()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	r, _ := newEngine(t, cfg)

	w := serve(r, http.MethodGet, "/health", nil, map[string]string{"Origin": "http://example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	w = serve(r, http.MethodGet, "/health", nil, map[string]string{"Origin": "http://evil.test"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin must not be echoed, got %q", got)
	}

	// Routes live under the configured prefix.
	if w = serve(r, http.MethodGet, "/api/v2/reschedules", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("GET /api/v2/reschedules = %d", w.Code)
	}
}

func TestRegisterRoutes_CORSPreflight(t *testing.T) {
	r, _ := newEngine(t, testConfig())

	w := serve(r, http.MethodOptions, "/api/v1/reconcile/import", nil, map[string]string{
		"Origin":                         "http://app.test",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": middleware.HeaderIdempotencyKey,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, middleware.HeaderIdempotencyKey) {
		t.Fatalf("allow-headers = %q", got)
	}
}

func TestRegisterRoutes_EndToEnd(t *testing.T) {
	r, _ := newEngine(t, testConfig())

	// Seed from the baseline, then edit one record through the API.
	w := serve(r, http.MethodPost, "/api/v1/seed", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seed = %d %s", w.Code, w.Body.String())
	}
	w = serve(r, http.MethodGet, "/api/v1/reschedules", nil, nil)
	var list handlers.ListReschedulesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Pagination.Total != 3 || list.Pagination.PageSize != 5 || list.Reschedules[0].Date != "2025-02-11" {
		t.Fatalf("list = %+v", list)
	}

	w = serve(r, http.MethodGet, "/api/v1/reconcile", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"missing":0`) {
		t.Fatalf("reconcile = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/api/v1/analytics/top?dimension=technician", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"Ana"`) {
		t.Fatalf("top = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_IdempotentImportReplay(t *testing.T) {
	r, db := newEngine(t, testConfig())
	hdr := map[string]string{middleware.HeaderIdempotencyKey: "import-1"}

	first := serve(r, http.MethodPost, "/api/v1/reconcile/import", nil, hdr)
	if first.Code != http.StatusOK || first.Header().Get(handlers.HeaderReplayed) != "" {
		t.Fatalf("first import = %d %v", first.Code, first.Header())
	}

	var stored domain.Idempotency
	if err := db.Where("key = ?", "import-1").First(&stored).Error; err != nil {
		t.Fatalf("idempotency record: %v", err)
	}
	if stored.Scope != "POST /api/v1/reconcile/import" || stored.Inserted != 3 {
		t.Fatalf("stored = %+v", stored)
	}

	again := serve(r, http.MethodPost, "/api/v1/reconcile/import", nil, hdr)
	if again.Code != http.StatusOK || again.Header().Get(handlers.HeaderReplayed) != "true" {
		t.Fatalf("replay = %d %v", again.Code, again.Header())
	}
	if !strings.Contains(again.Body.String(), `"inserted":3`) {
		t.Fatalf("replay body = %s", again.Body.String())
	}
}

func TestRegisterRoutes_NormalizeDatesRunsEveryTime(t *testing.T) {
	r, db := newEngine(t, testConfig())
	hdr := map[string]string{middleware.HeaderIdempotencyKey: "backfill-1"}

	for i := 0; i < 2; i++ {
		w := serve(r, http.MethodPost, "/api/v1/maintenance/normalize-dates", nil, hdr)
		if w.Code != http.StatusOK || w.Header().Get(handlers.HeaderReplayed) != "" {
			t.Fatalf("run %d = %d %v", i, w.Code, w.Header())
		}
	}
	var n int64
	if err := db.Model(&domain.Idempotency{}).Count(&n).Error; err != nil || n != 0 {
		t.Fatalf("idempotency records = %d, %v", n, err)
	}
}

func TestRegisterRoutes_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 0.001
	cfg.RateBurst = 1
	r, _ := newEngine(t, cfg)

	hdr := map[string]string{middleware.HeaderAPIKey: "client-a"}
	if w := serve(r, http.MethodGet, "/api/v1/lookups", nil, hdr); w.Code != http.StatusOK {
		t.Fatalf("first = %d", w.Code)
	}
	w := serve(r, http.MethodGet, "/api/v1/lookups", nil, hdr)
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
		t.Fatalf("second = %d headers=%v", w.Code, w.Header())
	}

	// Other clients have their own bucket; health is exempt.
	if w := serve(r, http.MethodGet, "/api/v1/lookups", nil, map[string]string{middleware.HeaderAPIKey: "client-b"}); w.Code != http.StatusOK {
		t.Fatalf("other client = %d", w.Code)
	}
	for i := 0; i < 3; i++ {
		if w := serve(r, http.MethodGet, "/health", nil, hdr); w.Code != http.StatusOK {
			t.Fatalf("health #%d = %d", i, w.Code)
		}
	}
}

func TestRegisterRoutes_GzipSkipsWorkbook(t *testing.T) {
	r, _ := newEngine(t, testConfig())
	hdr := map[string]string{"Accept-Encoding": "gzip"}

	w := serve(r, http.MethodGet, "/api/v1/lookups", nil, hdr)
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("json must be compressed, headers=%v", w.Header())
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, _ := io.ReadAll(zr)
	if !strings.Contains(string(raw), "Bruno") {
		t.Fatalf("decompressed = %s", raw)
	}

	w = serve(r, http.MethodGet, "/api/v1/export/reschedules.xlsx?merged=1", nil, hdr)
	if w.Code != http.StatusOK || w.Header().Get("Content-Encoding") != "" {
		t.Fatalf("export = %d encoding=%q", w.Code, w.Header().Get("Content-Encoding"))
	}
}

func TestRegisterRoutes_Swagger(t *testing.T) {
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	r, _ := newEngine(t, cfg)

	w := serve(r, http.MethodGet, "/swagger/doc.json", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/reschedules") {
		t.Fatalf("doc.json = %d", w.Code)
	}
}

func TestRegisterRoutes_BodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	r, _ := newEngine(t, cfg)

	body := bytes.NewBufferString(`{"workOrder":"` + strings.Repeat("9", 64) + `"}`)
	if w := serve(r, http.MethodPost, "/api/v1/reschedules", body, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("oversized body = %d", w.Code)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := serve(r, http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB"), nil) // 12 bytes
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := serve(r, http.MethodGet, path, nil, nil)
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}

func Test_rescheduleRepoShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	shim := RepoShim()
	ctx := context.Background()

	created, err := shim.CreateReschedule(ctx, db, &domain.Reschedule{WorkOrder: "1", StockKeepingID: "A", Date: "2025-01-01", Technician: "Ana"})
	if err != nil || created.ID == "" {
		t.Fatalf("CreateReschedule: %+v %v", created, err)
	}
	n, err := shim.CreateReschedules(ctx, db, []domain.Reschedule{
		{WorkOrder: "2", StockKeepingID: "B", Date: "2025-01-02"},
		{WorkOrder: "3", StockKeepingID: "C", Date: "2025-01-03"},
	}, 1)
	if err != nil || n != 2 {
		t.Fatalf("CreateReschedules: %d %v", n, err)
	}
	if c, err := shim.CountReschedules(ctx, db); err != nil || c != 3 {
		t.Fatalf("CountReschedules: %d %v", c, err)
	}
	page, err := shim.ListReschedules(ctx, db, repo.ListOptions{OrderByDateDesc: true, Limit: 2})
	if err != nil || len(page) != 2 || page[0].WorkOrder != "3" {
		t.Fatalf("ListReschedules: %+v %v", page, err)
	}
	if got, err := shim.GetReschedule(ctx, db, created.ID); err != nil || got.Technician != "Ana" {
		t.Fatalf("GetReschedule: %+v %v", got, err)
	}
	key := domain.NaturalKey{WorkOrder: "1", StockKeepingID: "A", Date: "2025-01-01"}
	if got, err := shim.FindByNaturalKey(ctx, db, key); err != nil || got.ID != created.ID {
		t.Fatalf("FindByNaturalKey: %+v %v", got, err)
	}
	if got, err := shim.UpdateReschedule(ctx, db, created.ID, map[string]any{"technician": "Carla"}); err != nil || got.Technician != "Carla" {
		t.Fatalf("UpdateReschedule: %+v %v", got, err)
	}
	if err := shim.DeleteReschedule(ctx, db, created.ID); err != nil {
		t.Fatalf("DeleteReschedule: %v", err)
	}
	if _, err := shim.GetReschedule(ctx, db, created.ID); err != repo.ErrNotFound {
		t.Fatalf("GetReschedule after delete: %v", err)
	}
}

func Test_storeShim(t *testing.T) {
	db := newTestDB(t)
	s := storeShim{db: db}
	ctx := context.Background()

	if n, ts, err := s.ReschedulesStats(ctx); err != nil || n != 0 || ts != nil {
		t.Fatalf("empty stats: %d %v %v", n, ts, err)
	}
	if _, err := s.CreateIdempotency(ctx, "POST /seed", "k", 4, http.StatusOK, time.Hour); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if _, err := s.CreateIdempotency(ctx, "POST /seed", "k", 4, http.StatusOK, time.Hour); err != repo.ErrDuplicate {
		t.Fatalf("duplicate: %v", err)
	}
	rec, err := s.GetIdempotency(ctx, "POST /seed", "k", time.Now().UTC())
	if err != nil || rec.Inserted != 4 {
		t.Fatalf("GetIdempotency: %+v %v", rec, err)
	}
}

func Test_idempotencyLookup(t *testing.T) {
	db := newTestDB(t)
	lookup := idempotencyLookup(db)
	ctx := context.Background()
	now := time.Now().UTC()

	// miss: no record is not an error
	if ok, err := lookup(ctx, "POST /seed", "k", now); ok || err != nil {
		t.Fatalf("miss: %v %v", ok, err)
	}

	if _, err := repo.CreateIdempotency(ctx, db, "POST /seed", "k", 1, http.StatusOK, time.Hour); err != nil {
		t.Fatalf("seed idempotency: %v", err)
	}
	if ok, err := lookup(ctx, "POST /seed", "k", now); !ok || err != nil {
		t.Fatalf("hit: %v %v", ok, err)
	}
	// expired records do not count
	if ok, _ := lookup(ctx, "POST /seed", "k", now.Add(2*time.Hour)); ok {
		t.Fatalf("expired record must miss")
	}

	// error: closed connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	_ = sqlDB.Close()
	if ok, err := lookup(ctx, "POST /seed", "k", now); ok || err == nil {
		t.Fatalf("closed db: %v %v", ok, err)
	}
}
