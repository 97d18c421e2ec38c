// Analytics HTTP handlers.
//
// These endpoints shape the merged dataset (live store plus baseline records
// not yet stored) for the dashboard:
//   - GET /lookups               (filter option lists)
//   - GET /analytics/summary     (headline counts)
//   - GET /analytics/top         (top-N by dimension)
//   - GET /analytics/series      (counts over time)
//   - GET /analytics/records     (drill-down for one top-N bar)
//
// Every analytics endpoint accepts the filter params q, technician, product,
// reason, type, from and to.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-reschedule-backend/internal/analytics"
	"github.com/tbourn/go-reschedule-backend/internal/domain"
	"github.com/tbourn/go-reschedule-backend/internal/ingest"
	"github.com/tbourn/go-reschedule-backend/internal/utils"
)

// TopResponse is the result of a top-N query.
type TopResponse struct {
	Dimension analytics.Dimension `json:"dimension" example:"technician"`
	Items     []analytics.Count   `json:"items"`
}

// SeriesResponse is a date-bucketed count series.
type SeriesResponse struct {
	Granularity analytics.Granularity `json:"granularity" example:"month"`
	Points      []analytics.Point     `json:"points"`
}

// RecordsResponse lists the records behind one label.
type RecordsResponse struct {
	Records []domain.Reschedule `json:"records"`
	Total   int                 `json:"total"`
}

// criteriaFrom reads the shared filter params. Dates go through the same
// normalizer as stored values so d/m/yyyy bounds also work.
func criteriaFrom(c *gin.Context) analytics.Criteria {
	return analytics.Criteria{
		Search:     strings.TrimSpace(c.Query("q")),
		Technician: strings.TrimSpace(c.Query("technician")),
		Product:    strings.TrimSpace(c.Query("product")),
		Reason:     strings.TrimSpace(c.Query("reason")),
		Type:       strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		From:       ingest.NormalizeDateString(strings.TrimSpace(c.Query("from"))),
		To:         ingest.NormalizeDateString(strings.TrimSpace(c.Query("to"))),
	}
}

// filtered loads the merged dataset and applies the request filters. It
// writes the error response itself and reports false on failure.
func (h *Handlers) filtered(c *gin.Context) ([]domain.Reschedule, analytics.Criteria, bool) {
	crit := criteriaFrom(c)
	all, err := h.dataSvc.Merged(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return nil, crit, false
	}
	return analytics.Filter(all, crit), crit, true
}

// GetLookups godoc
// @ID          getLookups
// @Summary     Filter option lists
// @Description Distinct technicians, products, part names, reasons and types over the merged dataset.
// @Tags        Analytics
// @Produce     json
//
// @Success     200  {object} analytics.Lookups
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /lookups [get]
func (h *Handlers) GetLookups(c *gin.Context) {
	all, err := h.dataSvc.Merged(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, analytics.BuildLookups(all))
}

// GetSummary godoc
// @ID          getSummary
// @Summary     Headline counts
// @Tags        Analytics
// @Produce     json
//
// @Param       q           query  string  false "Free-text search"
// @Param       technician  query  string  false "Technician"
// @Param       product     query  string  false "Product"
// @Param       reason      query  string  false "Reason code"
// @Param       type        query  string  false "FUNCTIONAL or AESTHETIC"
// @Param       from        query  string  false "Inclusive start date"  example(2025-01-01)
// @Param       to          query  string  false "Inclusive end date"    example(2025-12-31)
//
// @Success     200  {object} analytics.Summary
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /analytics/summary [get]
func (h *Handlers) GetSummary(c *gin.Context) {
	recs, _, loaded := h.filtered(c)
	if !loaded {
		return
	}
	ok(c, http.StatusOK, analytics.Summarize(recs))
}

// GetTop godoc
// @ID          getTop
// @Summary     Top-N counts by dimension
// @Tags        Analytics
// @Produce     json
//
// @Param       dimension  query  string  true  "technician, part, sku, product or reason"
// @Param       limit      query  int     false "Number of entries"  default(10)
// @Param       q           query  string  false "Free-text search"
// @Param       technician  query  string  false "Technician"
// @Param       product     query  string  false "Product"
// @Param       reason      query  string  false "Reason code"
// @Param       type        query  string  false "FUNCTIONAL or AESTHETIC"
// @Param       from        query  string  false "Inclusive start date"
// @Param       to          query  string  false "Inclusive end date"
//
// @Success     200  {object} handlers.TopResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown dimension"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /analytics/top [get]
func (h *Handlers) GetTop(c *gin.Context) {
	dim, err := analytics.ParseDimension(c.Query("dimension"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	recs, _, loaded := h.filtered(c)
	if !loaded {
		return
	}
	n := utils.AtoiDefault(c.Query("limit"), analytics.DefaultTopN)
	ok(c, http.StatusOK, TopResponse{Dimension: dim, Items: analytics.Top(recs, dim, n)})
}

// GetSeries godoc
// @ID          getSeries
// @Summary     Record counts over time
// @Tags        Analytics
// @Produce     json
//
// @Param       granularity  query  string  false "day, month or year"  default(month)
// @Param       q           query  string  false "Free-text search"
// @Param       technician  query  string  false "Technician"
// @Param       product     query  string  false "Product"
// @Param       reason      query  string  false "Reason code"
// @Param       type        query  string  false "FUNCTIONAL or AESTHETIC"
// @Param       from        query  string  false "Inclusive start date"
// @Param       to          query  string  false "Inclusive end date"
//
// @Success     200  {object} handlers.SeriesResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown granularity"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /analytics/series [get]
func (h *Handlers) GetSeries(c *gin.Context) {
	g, err := analytics.ParseGranularity(c.Query("granularity"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	recs, crit, loaded := h.filtered(c)
	if !loaded {
		return
	}
	ok(c, http.StatusOK, SeriesResponse{Granularity: g, Points: analytics.Series(recs, g, crit.From, crit.To)})
}

// GetRecords godoc
// @ID          getAnalyticsRecords
// @Summary     Records behind a label
// @Description Drill-down for a top-N entry: the filtered records whose dimension value equals label.
// @Tags        Analytics
// @Produce     json
//
// @Param       dimension  query  string  true  "technician, part, sku, product or reason"
// @Param       label      query  string  true  "Label as returned by /analytics/top"
// @Param       q           query  string  false "Free-text search"
// @Param       technician  query  string  false "Technician"
// @Param       product     query  string  false "Product"
// @Param       reason      query  string  false "Reason code"
// @Param       type        query  string  false "FUNCTIONAL or AESTHETIC"
// @Param       from        query  string  false "Inclusive start date"
// @Param       to          query  string  false "Inclusive end date"
//
// @Success     200  {object} handlers.RecordsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /analytics/records [get]
func (h *Handlers) GetRecords(c *gin.Context) {
	dim, err := analytics.ParseDimension(c.Query("dimension"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	label, present := c.GetQuery("label")
	if !present {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "label is required")
		return
	}
	recs, _, loaded := h.filtered(c)
	if !loaded {
		return
	}
	out := analytics.Matching(recs, dim, label)
	ok(c, http.StatusOK, RecordsResponse{Records: out, Total: len(out)})
}
