package controllers

import (
	"github.com/gin-gonic/gin"

	"weddingplanner-backend/reports"
	"weddingplanner-backend/utils"
)

// ExportReport answers ?type=<section|all> with spreadsheet-ready rows keyed
// by section.
func (h *Handler) ExportReport(c *gin.Context) {
	w, ok := h.wedding(c)
	if !ok {
		return
	}
	exportType := c.DefaultQuery("type", "all")
	sections, err := reports.SectionsFor(exportType)
	if err != nil {
		h.fail(c, err, "report")
		return
	}
	data, err := h.svc.Loader.Dataset(c.Request.Context(), w, sections)
	if err != nil {
		h.fail(c, err, "report")
		return
	}
	out, err := reports.Export(exportType, data)
	if err != nil {
		h.fail(c, err, "report")
		return
	}
	utils.RespondOK(c, out)
}
