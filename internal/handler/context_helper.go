package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushub/gradebook-api/internal/middleware"
	"github.com/campushub/gradebook-api/internal/models"
)

// currentUser extracts the authenticated claims from the gin context.
func currentUser(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}

// queryPage parses the page query parameter, defaulting to 1.
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// queryScope builds a grade scope from the selector query parameters.
func queryScope(c *gin.Context) models.GradeScope {
	return models.GradeScope{
		ClassID:      strings.TrimSpace(c.Query("class")),
		SubjectID:    strings.TrimSpace(c.Query("subject")),
		AcademicYear: strings.TrimSpace(c.Query("academic_year")),
		Term:         strings.TrimSpace(c.Query("term")),
	}
}
