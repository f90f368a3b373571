package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushub/gradebook-api/internal/models"
	"github.com/campushub/gradebook-api/internal/service"
	"github.com/campushub/gradebook-api/pkg/response"
)

// ClassHandler exposes class selector endpoints.
type ClassHandler struct {
	classes  *service.ClassService
	students *service.StudentService
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes *service.ClassService, students *service.StudentService) *ClassHandler {
	return &ClassHandler{classes: classes, students: students}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param search query string false "Search by class name"
// @Param academic_year query string false "Filter by academic year"
// @Success 200 {object} response.Envelope
// @Router /classes/ [get]
func (h *ClassHandler) List(c *gin.Context) {
	filter := models.ClassFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		AcademicYear: strings.TrimSpace(c.Query("academic_year")),
	}
	classes, total, err := h.classes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, http.StatusOK, classes, &models.Pagination{Count: total})
}

// Get godoc
// @Summary Get class detail
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Roster godoc
// @Summary List students enrolled in a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Param page query int false "Page"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students/ [get]
func (h *ClassHandler) Roster(c *gin.Context) {
	students, pagination, err := h.students.Roster(c.Request.Context(), models.RosterFilter{
		ClassID: c.Param("id"),
		Page:    queryPage(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, http.StatusOK, students, pagination)
}
