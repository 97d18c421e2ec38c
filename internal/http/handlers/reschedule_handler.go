// Reschedule HTTP handlers.
//
// This file exposes CRUD endpoints for persisted records:
//   - GET    /reschedules        (list, paginated or all=1, ETag support)
//   - POST   /reschedules        (create)
//   - GET    /reschedules/{id}   (read)
//   - PUT    /reschedules/{id}   (replace editable fields)
//   - DELETE /reschedules/{id}   (delete)
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/http/middleware"
	"github.com/tbourn/go-reschedule-backend/internal/services"
	"github.com/tbourn/go-reschedule-backend/internal/sysutil"
	"github.com/tbourn/go-reschedule-backend/internal/utils"
)

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListReschedulesResponse wraps a page of records and pagination information.
type ListReschedulesResponse struct {
	Reschedules []domain.Reschedule `json:"reschedules"`
	Pagination  Pagination          `json:"pagination"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

//
// Helpers
//

// parseID reads the :id path param and rejects anything but a UUID.
func parseID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a UUID")
		return "", false
	}
	return id, true
}

// bindInput decodes the JSON body; a malformed body is a 400 bad_request.
func bindInput(c *gin.Context) (services.RescheduleInput, bool) {
	var in services.RescheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return in, false
	}
	return in, true
}

// writeServiceError maps service errors onto the envelope. fallback is the
// code used for unexpected failures.
func writeServiceError(c *gin.Context, err error, fallback string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		failValidation(c, ve)
	case errors.Is(err, services.ErrRescheduleNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "reschedule not found")
	default:
		fail(c, http.StatusInternalServerError, fallback, err.Error())
	}
}

// listETag sets a weak ETag derived from store stats and the requested view.
// It returns true when the client copy is current and 304 was written.
func (h *Handlers) listETag(c *gin.Context, view string) bool {
	if h.opts.Store == nil {
		return false
	}
	count, maxTS, err := h.opts.Store.ReschedulesStats(c.Request.Context())
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("reschedule stats unavailable")
		return false
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	etag := fmt.Sprintf(`W/"reschedules:%d:%d:%s"`, count, ts, view)
	c.Header("ETag", etag)
	middleware.ExposeHeader(c.Writer.Header(), "ETag")
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

//
// Handlers
//

// ListReschedules godoc
// @ID          listReschedules
// @Summary     List reschedules
// @Description Returns persisted records, most recent date first. Pass all=1 for the full set.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Reschedules
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"reschedules:42:1700000000:p1s100\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(5000) default(100)
// @Param       all            query   bool    false "Return every record in one page"
//
// @Success     200  {object} handlers.ListReschedulesResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reschedules [get]
func (h *Handlers) ListReschedules(c *gin.Context) {
	ctx := c.Request.Context()

	if sysutil.IsTruthy(c.Query("all")) {
		if h.listETag(c, "all") {
			return
		}
		items, err := h.resSvc.List(ctx)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		size := len(items)
		if size == 0 {
			size = h.opts.DefaultPageSize
		}
		ok(c, http.StatusOK, ListReschedulesResponse{
			Reschedules: items,
			Pagination:  newPagination(1, size, int64(len(items))),
		})
		return
	}

	page, pageSize := utils.ClampPage(
		utils.AtoiDefault(c.Query("page"), 1),
		utils.AtoiDefault(c.Query("page_size"), h.opts.DefaultPageSize),
		h.opts.DefaultPageSize, h.opts.MaxPageSize,
	)
	if h.listETag(c, fmt.Sprintf("p%ds%d", page, pageSize)) {
		return
	}

	items, total, err := h.resSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListReschedulesResponse{
		Reschedules: items,
		Pagination:  newPagination(page, pageSize, total),
	})
}

// CreateReschedule godoc
// @ID          createReschedule
// @Summary     Create a reschedule
// @Description Validates and stores a record. The date may be any accepted spreadsheet form; it is stored as YYYY-MM-DD.
// @Tags        Reschedules
// @Accept      json
// @Produce     json
//
// @Param       body  body  services.RescheduleInput  true  "Record payload"
//
// @Success     201  {object}  domain.Reschedule
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reschedules [post]
func (h *Handlers) CreateReschedule(c *gin.Context) {
	in, bound := bindInput(c)
	if !bound {
		return
	}
	r, err := h.resSvc.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceError(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, r)
}

// GetReschedule godoc
// @ID          getReschedule
// @Summary     Get a reschedule
// @Tags        Reschedules
// @Produce     json
//
// @Param       id  path  string  true  "Record ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Reschedule
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reschedules/{id} [get]
func (h *Handlers) GetReschedule(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}
	r, err := h.resSvc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, r)
}

// UpdateReschedule godoc
// @ID          updateReschedule
// @Summary     Update a reschedule
// @Description Replaces every editable field. Validation runs before the lookup.
// @Tags        Reschedules
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                    true  "Record ID (UUID)"  format(uuid)
// @Param       body  body  services.RescheduleInput  true  "Record payload"
//
// @Success     200  {object} domain.Reschedule
// @Failure     400  {object} handlers.ErrorResponse "Bad request or validation failed"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reschedules/{id} [put]
func (h *Handlers) UpdateReschedule(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}
	in, bound := bindInput(c)
	if !bound {
		return
	}
	r, err := h.resSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeServiceError(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteReschedule godoc
// @ID          deleteReschedule
// @Summary     Delete a reschedule
// @Tags        Reschedules
//
// @Param       id  path  string  true  "Record ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reschedules/{id} [delete]
func (h *Handlers) DeleteReschedule(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}
	if err := h.resSvc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, ErrCodeDeleteFailed)
		return
	}
	noContent(c)
}
