package controllers

import (
	"github.com/gin-gonic/gin"

	"weddingplanner-backend/utils"
)

// GetDashboard returns the wedding overview: RSVP, budget and task counts,
// overdue tasks, and the events still ahead.
func (h *Handler) GetDashboard(c *gin.Context) {
	w, ok := h.wedding(c)
	if !ok {
		return
	}
	d, err := h.svc.Loader.Dashboard(c.Request.Context(), w)
	if err != nil {
		h.fail(c, err, "dashboard")
		return
	}
	utils.RespondOK(c, d)
}
