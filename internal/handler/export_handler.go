package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/gradebook-api/internal/service"
	"github.com/campushub/gradebook-api/pkg/response"
)

// ExportHandler exposes CSV and PDF export endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ResultsCSV godoc
// @Summary Export class results as CSV
// @Tags Exports
// @Produce text/csv
// @Param class query string true "Class ID"
// @Param subject query string true "Subject ID"
// @Param academic_year query string true "Academic year"
// @Param term query string true "Term"
// @Success 200 {string} string "CSV payload"
// @Security BearerAuth
// @Router /results/export.csv [get]
func (h *ExportHandler) ResultsCSV(c *gin.Context) {
	payload, filename, err := h.exports.ClassResultsCSV(c.Request.Context(), queryScope(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// TermReportPDF godoc
// @Summary Export a student's term report as PDF
// @Tags Exports
// @Produce application/pdf
// @Param student query string true "Student ID"
// @Param academic_year query string true "Academic year"
// @Param term query string true "Term"
// @Success 200 {string} string "PDF payload"
// @Security BearerAuth
// @Router /reports/term.pdf [get]
func (h *ExportHandler) TermReportPDF(c *gin.Context) {
	payload, filename, err := h.exports.TermReportPDF(c.Request.Context(),
		c.Query("student"), c.Query("academic_year"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}
