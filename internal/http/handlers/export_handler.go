package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-reschedule-backend/internal/analytics"
	"github.com/tbourn/go-reschedule-backend/internal/http/middleware"
	"github.com/tbourn/go-reschedule-backend/internal/ingest"
	"github.com/tbourn/go-reschedule-backend/internal/sysutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportReschedules godoc
// @ID          exportReschedules
// @Summary     Download persisted records as xlsx
// @Description One sheet with the ingestion column headers, so the file can be ingested again.
// @Description Accepts the analytics filter params; merged=1 exports the merged dataset instead of the store.
// @Tags        Export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//
// @Param       merged      query  bool    false "Include baseline records not yet stored"
// @Param       q           query  string  false "Free-text search"
// @Param       technician  query  string  false "Technician"
// @Param       product     query  string  false "Product"
// @Param       reason      query  string  false "Reason code"
// @Param       type        query  string  false "FUNCTIONAL or AESTHETIC"
// @Param       from        query  string  false "Inclusive start date"
// @Param       to          query  string  false "Inclusive end date"
//
// @Success     200  {file}   file
// @Header      200  {string} Content-Disposition "attachment; filename=reschedules-YYYYMMDD.xlsx"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /export/reschedules.xlsx [get]
func (h *Handlers) ExportReschedules(c *gin.Context) {
	ctx := c.Request.Context()
	load := h.dataSvc.Live
	if sysutil.IsTruthy(c.Query("merged")) {
		load = h.dataSvc.Merged
	}
	recs, err := load(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	recs = analytics.Filter(recs, criteriaFrom(c))

	var buf bytes.Buffer
	if err := ingest.WriteWorkbook(&buf, recs); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}

	name := fmt.Sprintf("reschedules-%s.xlsx", h.opts.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	middleware.ExposeHeader(c.Writer.Header(), "Content-Disposition")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
