// Package httpapi wires the HTTP transport (Gin) to the reschedule services,
// middleware and route handlers. It owns the cross-cutting concerns: tracing,
// correlation IDs, redacted logging, panic recovery, metrics, idempotency,
// rate limiting, CORS, security headers and compression.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-reschedule-backend/docs"
	"github.com/tbourn/go-reschedule-backend/internal/config"
	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/http/handlers"
	"github.com/tbourn/go-reschedule-backend/internal/http/middleware"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
	"github.com/tbourn/go-reschedule-backend/internal/services"
)

// rescheduleRepoShim adapts the repository free functions to
// services.RescheduleRepo.
type rescheduleRepoShim struct{}

func (rescheduleRepoShim) CreateReschedule(ctx context.Context, db *gorm.DB, r *domain.Reschedule) (*domain.Reschedule, error) {
	return repo.CreateReschedule(ctx, db, r)
}

func (rescheduleRepoShim) CreateReschedules(ctx context.Context, db *gorm.DB, records []domain.Reschedule, batchSize int) (int64, error) {
	return repo.CreateReschedules(ctx, db, records, batchSize)
}

func (rescheduleRepoShim) ListReschedules(ctx context.Context, db *gorm.DB, opts repo.ListOptions) ([]domain.Reschedule, error) {
	return repo.ListReschedules(ctx, db, opts)
}

func (rescheduleRepoShim) CountReschedules(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountReschedules(ctx, db)
}

func (rescheduleRepoShim) GetReschedule(ctx context.Context, db *gorm.DB, id string) (*domain.Reschedule, error) {
	return repo.GetReschedule(ctx, db, id)
}

func (rescheduleRepoShim) FindByNaturalKey(ctx context.Context, db *gorm.DB, key domain.NaturalKey) (*domain.Reschedule, error) {
	return repo.FindByNaturalKey(ctx, db, key)
}

func (rescheduleRepoShim) UpdateReschedule(ctx context.Context, db *gorm.DB, id string, fields map[string]any) (*domain.Reschedule, error) {
	return repo.UpdateReschedule(ctx, db, id, fields)
}

func (rescheduleRepoShim) DeleteReschedule(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteReschedule(ctx, db, id)
}

// RepoShim returns the services.RescheduleRepo backed by the repo package.
// The CLI shares it with the router.
func RepoShim() services.RescheduleRepo { return rescheduleRepoShim{} }

// storeShim binds the repo functions handlers call directly to db.
type storeShim struct{ db *gorm.DB }

func (s storeShim) ReschedulesStats(ctx context.Context) (int64, *time.Time, error) {
	return repo.ReschedulesStats(ctx, s.db)
}

func (s storeShim) GetIdempotency(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return repo.GetIdempotency(ctx, s.db, scope, key, now)
}

func (s storeShim) CreateIdempotency(ctx context.Context, scope, key string, inserted int64, status int, ttl time.Duration) (*domain.Idempotency, error) {
	return repo.CreateIdempotency(ctx, s.db, scope, key, inserted, status, ttl)
}

// idempotencyLookup reports whether (scope, key) already completed. A missing
// record is not an error.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
		rec, err := repo.GetIdempotency(ctx, db, scope, key, now)
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return rec != nil, nil
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Access log: RedactingLogger, or the plain Logger in debug mode
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per API key/IP, bypass on replay)
//  9. CORS and security headers
//  10. gzip, skipping xlsx downloads and /metrics
func RegisterRoutes(r *gin.Engine, db *gorm.DB, base services.BaselineSource, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	if cfg.GinMode == gin.DebugMode {
		r.Use(middleware.Logger())
	} else {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			// free-text search may carry customer names
			MaskQuery: []string{"q"},
		}))
	}
	r.Use(middleware.Recovery())

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(limitBody(maxBody))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idempotencyLookup(db)))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClient()).
		Exempt("/health", "/metrics")
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedExtensions([]string{".xlsx"}),
		gzip.WithExcludedPaths([]string{"/metrics"}),
	))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/baseline
	shim := rescheduleRepoShim{}
	resSvc := services.NewRescheduleService(db, shim)
	if cfg.Data.MaxPageSize > 0 {
		resSvc.MaxPageSize = cfg.Data.MaxPageSize
	}
	if cfg.Data.DefaultPageSize > 0 {
		resSvc.DefaultPageSize = cfg.Data.DefaultPageSize
	}
	dataSvc := &services.DatasetService{DB: db, Repo: shim, Baseline: base}
	recSvc := &services.ReconcileService{DB: db, Repo: shim, Baseline: base, BatchSize: cfg.Data.ImportBatchSize}
	maintSvc := &services.MaintenanceService{DB: db, Repo: shim}

	h := handlers.New(resSvc, dataSvc, recSvc, maintSvc, handlers.Options{
		Store:           storeShim{db: db},
		IdempotencyTTL:  cfg.IdempotencyTTL,
		DefaultPageSize: resSvc.DefaultPageSize,
		MaxPageSize:     resSvc.MaxPageSize,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Records
		api.GET("/reschedules", h.ListReschedules)
		api.POST("/reschedules", h.CreateReschedule)
		api.GET("/reschedules/:id", h.GetReschedule)
		api.PUT("/reschedules/:id", h.UpdateReschedule)
		api.DELETE("/reschedules/:id", h.DeleteReschedule)

		// Analysis over the merged dataset
		api.GET("/lookups", h.GetLookups)
		api.GET("/analytics/summary", h.GetSummary)
		api.GET("/analytics/top", h.GetTop)
		api.GET("/analytics/series", h.GetSeries)
		api.GET("/analytics/records", h.GetRecords)

		// Baseline reconciliation
		api.GET("/reconcile", h.GetReconcileStatus)
		api.POST("/reconcile/import", h.ImportMissing)
		api.POST("/seed", h.Seed)

		// Maintenance and export
		api.POST("/maintenance/normalize-dates", h.NormalizeDates)
		api.GET("/export/reschedules.xlsx", h.ExportReschedules)
	}
}

var (
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match",
		middleware.HeaderAPIKey, middleware.HeaderIdempotencyKey,
	}
	corsExposed = []string{
		middleware.HeaderRequestID, "ETag", "Content-Disposition", "Retry-After", handlers.HeaderReplayed,
	}
)

// corsMiddleware allows every origin when none is configured and echoes
// allowlisted origins otherwise. The echo middleware also covers requests
// gin-contrib/cors skips, such as same-host calls and health checks.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     corsMethods,
		AllowHeaders:     corsHeaders,
		ExposeHeaders:    corsExposed,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cc),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	cc.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cc),
	}
}

// limitBody caps request bodies at maxBytes; larger bodies fail on read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
