package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/gradebook-api/internal/service"
	"github.com/campushub/gradebook-api/pkg/response"
)

// ResultsHandler exposes the merged class results view.
type ResultsHandler struct {
	results *service.ResultsService
}

// NewResultsHandler constructs ResultsHandler.
func NewResultsHandler(results *service.ResultsService) *ResultsHandler {
	return &ResultsHandler{results: results}
}

// List godoc
// @Summary Class results with grades merged onto the roster
// @Tags Results
// @Produce json
// @Param class query string true "Class ID"
// @Param subject query string true "Subject ID"
// @Param academic_year query string true "Academic year"
// @Param term query string true "Term"
// @Param page query int false "Page"
// @Success 200 {object} response.Envelope
// @Router /results/ [get]
func (h *ResultsHandler) List(c *gin.Context) {
	scope := queryScope(c)
	results, err := h.results.Load(c.Request.Context(), service.ResultsQuery{
		ClassID:      scope.ClassID,
		SubjectID:    scope.SubjectID,
		AcademicYear: scope.AcademicYear,
		Term:         scope.Term,
		Page:         queryPage(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	envelope := response.Envelope{Results: results}
	if results.Pagination != nil {
		envelope.Count = &results.Pagination.Count
		envelope.Next = results.Pagination.Next
		envelope.Previous = results.Pagination.Previous
	}
	c.JSON(http.StatusOK, envelope)
}
