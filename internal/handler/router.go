package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/gradebook-api/internal/middleware"
	"github.com/campushub/gradebook-api/internal/models"
	"github.com/campushub/gradebook-api/internal/service"
)

// Handlers groups the HTTP handlers registered on the router.
type Handlers struct {
	Auth    *AuthHandler
	Classes *ClassHandler
	Subject *SubjectHandler
	Grades  *GradeHandler
	Results *ResultsHandler
	Exports *ExportHandler
	Metrics *MetricsHandler
}

// RegisterRoutes wires every endpoint under the API prefix. Reads are
// open; grade writes require a teacher or admin token.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/me", middleware.JWT(auth), h.Auth.Me)

	api.GET("/classes/", h.Classes.List)
	api.GET("/classes/:id", h.Classes.Get)
	api.GET("/classes/:id/students/", h.Classes.Roster)

	api.GET("/subjects/", h.Subject.List)
	api.GET("/subjects/:id", h.Subject.Get)

	api.GET("/grades/", middleware.JWT(auth), h.Grades.List)
	api.GET("/grades/by-params/", middleware.JWT(auth), h.Grades.GetByParams)
	api.GET("/grades/summary/", middleware.JWT(auth), h.Grades.Summary)

	staff := middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin)
	api.POST("/grades/", middleware.JWT(auth), staff, h.Grades.Create)
	api.PATCH("/grades/by-params/", middleware.JWT(auth), staff, h.Grades.Update)

	api.GET("/results/", h.Results.List)

	if h.Exports != nil {
		api.GET("/results/export.csv", middleware.JWT(auth), h.Exports.ResultsCSV)
		api.GET("/reports/term.pdf", middleware.JWT(auth), h.Exports.TermReportPDF)
	}

	r.GET("/metrics", h.Metrics.Prometheus)
}
