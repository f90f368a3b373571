package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/gradebook-api/internal/models"
	"github.com/campushub/gradebook-api/internal/service"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
	"github.com/campushub/gradebook-api/pkg/response"
)

// GradeHandler exposes grade entry endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// List godoc
// @Summary List grades for a class, subject, year and term
// @Tags Grades
// @Produce json
// @Param class query string true "Class ID"
// @Param subject query string true "Subject ID"
// @Param academic_year query string true "Academic year"
// @Param term query string true "Term"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /grades/ [get]
func (h *GradeHandler) List(c *gin.Context) {
	grades, err := h.grades.List(c.Request.Context(), queryScope(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, http.StatusOK, grades, &models.Pagination{Count: len(grades)})
}

// GetByParams godoc
// @Summary Fetch one grade record by its identifying parameters
// @Tags Grades
// @Produce json
// @Param student query string true "Student ID"
// @Param class query string true "Class ID"
// @Param subject query string true "Subject ID"
// @Param academic_year query string true "Academic year"
// @Param term query string true "Term"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /grades/by-params/ [get]
func (h *GradeHandler) GetByParams(c *gin.Context) {
	scope := queryScope(c)
	grade, err := h.grades.GetByParams(c.Request.Context(), models.GradeParams{
		StudentID:    c.Query("student"),
		ClassID:      scope.ClassID,
		SubjectID:    scope.SubjectID,
		AcademicYear: scope.AcademicYear,
		Term:         scope.Term,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}

// Create godoc
// @Summary Create a grade record
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.SaveGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /grades/ [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req service.SaveGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IsNewGrade = true
	grade, err := h.grades.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}

// Update godoc
// @Summary Update a grade record identified by its parameters
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.SaveGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /grades/by-params/ [patch]
func (h *GradeHandler) Update(c *gin.Context) {
	var req service.SaveGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IsNewGrade = false
	grade, err := h.grades.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}

// Summary godoc
// @Summary Aggregate performance for a grade scope
// @Tags Grades
// @Produce json
// @Param class query string true "Class ID"
// @Param subject query string true "Subject ID"
// @Param academic_year query string true "Academic year"
// @Param term query string true "Term"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /grades/summary/ [get]
func (h *GradeHandler) Summary(c *gin.Context) {
	summary, err := h.grades.ClassSummary(c.Request.Context(), queryScope(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
