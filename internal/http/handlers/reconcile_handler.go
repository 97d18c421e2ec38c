// Reconciliation HTTP handlers.
//
//   - GET  /reconcile          (compare store and baseline)
//   - POST /reconcile/import   (insert baseline records missing from the store)
//   - POST /seed               (bulk-insert the whole baseline)
//
// Idempotency:
// When the request carries an Idempotency-Key that already completed for the
// same route, the stored result is returned with `Idempotency-Replayed: true`
// and nothing is inserted again.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-reschedule-backend/internal/http/middleware"
	"github.com/tbourn/go-reschedule-backend/internal/repo"
	"github.com/tbourn/go-reschedule-backend/internal/services"
)

// HeaderReplayed marks a response served from a stored idempotent result.
const HeaderReplayed = "Idempotency-Replayed"

// ImportResponse reports the outcome of an import or seed.
type ImportResponse struct {
	Inserted int64 `json:"inserted" example:"37"`
	Replayed bool  `json:"replayed"`
}

// replayed writes the stored result for a replayed key. It returns false when
// the request must run normally.
func (h *Handlers) replayed(c *gin.Context) bool {
	if !middleware.IsReplay(c) || h.opts.Store == nil {
		return false
	}
	key, _ := middleware.GetIdempotencyKey(c)
	rec, err := h.opts.Store.GetIdempotency(c.Request.Context(), middleware.IdempotencyScope(c), key, h.opts.Now().UTC())
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency read failed")
		}
		return false
	}
	c.Header(HeaderReplayed, "true")
	ok(c, rec.Status, ImportResponse{Inserted: rec.Inserted, Replayed: true})
	return true
}

// remember stores a completed result under the request's key, if any.
func (h *Handlers) remember(c *gin.Context, inserted int64, status int) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.opts.Store == nil {
		return
	}
	_, err := h.opts.Store.CreateIdempotency(c.Request.Context(), middleware.IdempotencyScope(c), key, inserted, status, h.opts.IdempotencyTTL)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		middleware.LoggerFrom(c).Debug().Str("key", key).Msg("idempotency key already stored")
	case err != nil:
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency write failed")
	}
}

// runImport executes an idempotent bulk action and maps its errors.
func (h *Handlers) runImport(c *gin.Context, action func(context.Context) (int64, error)) {
	if h.replayed(c) {
		return
	}
	n, err := action(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBaselineUnavailable):
			fail(c, http.StatusServiceUnavailable, ErrCodeBaselineUnavailable, err.Error())
		case errors.Is(err, services.ErrNothingToSeed):
			fail(c, http.StatusConflict, ErrCodeNothingToSeed, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeImportFailed, err.Error())
		}
		return
	}
	h.remember(c, n, http.StatusOK)
	ok(c, http.StatusOK, ImportResponse{Inserted: n})
}

// GetReconcileStatus godoc
// @ID          getReconcileStatus
// @Summary     Compare store and baseline
// @Description Reports both counts, whether the store is ready, whether an import is needed
// @Description and how many distinct baseline keys are missing. Never writes.
// @Tags        Reconcile
// @Produce     json
//
// @Success     200  {object} services.Status
// @Failure     503  {object} handlers.ErrorResponse "Baseline unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reconcile [get]
func (h *Handlers) GetReconcileStatus(c *gin.Context) {
	st, err := h.recSvc.Status(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrBaselineUnavailable) {
			fail(c, http.StatusServiceUnavailable, ErrCodeBaselineUnavailable, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, st)
}

// ImportMissing godoc
// @ID          importMissing
// @Summary     Import missing baseline records
// @Description Inserts the baseline records whose natural key is not stored yet.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Reconcile
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
//
// @Success     200  {object} handlers.ImportResponse
// @Header      200  {string} Idempotency-Replayed "true when served from a previous run"
// @Failure     400  {object} handlers.ErrorResponse "Invalid Idempotency-Key"
// @Failure     503  {object} handlers.ErrorResponse "Baseline unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reconcile/import [post]
func (h *Handlers) ImportMissing(c *gin.Context) {
	h.runImport(c, h.recSvc.ImportFromBaseline)
}

// Seed godoc
// @ID          seed
// @Summary     Seed the store from the baseline
// @Description Bulk-inserts the deduplicated baseline without comparing. Meant for an empty store.
// @Tags        Reconcile
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"
//
// @Success     200  {object} handlers.ImportResponse
// @Failure     400  {object} handlers.ErrorResponse "Invalid Idempotency-Key"
// @Failure     409  {object} handlers.ErrorResponse "Baseline is empty"
// @Failure     503  {object} handlers.ErrorResponse "Baseline unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /seed [post]
func (h *Handlers) Seed(c *gin.Context) {
	h.runImport(c, h.recSvc.Seed)
}
