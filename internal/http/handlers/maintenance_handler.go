package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NormalizeDates godoc
// @ID          normalizeDates
// @Summary     Repair stored dates
// @Description Rewrites non-canonical stored dates to YYYY-MM-DD. A repaired record that collides
// @Description with another record's natural key is deleted instead. Per-record failures are counted, not fatal.
// @Tags        Maintenance
// @Produce     json
//
// @Success     200  {object} services.BackfillReport
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /maintenance/normalize-dates [post]
func (h *Handlers) NormalizeDates(c *gin.Context) {
	rep, err := h.maintSvc.BackfillDates(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeBackfillFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rep)
}
