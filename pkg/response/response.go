package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/gradebook-api/internal/models"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
)

// Envelope is the common response contract for list and detail payloads.
type Envelope struct {
	Count    *int             `json:"count,omitempty"`
	Next     *string          `json:"next,omitempty"`
	Previous *string          `json:"previous,omitempty"`
	Results  interface{}      `json:"results,omitempty"`
	Data     interface{}      `json:"data,omitempty"`
	Error    *appErrors.Error `json:"error,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// List sends a paginated collection using the count/next/previous contract.
func List(c *gin.Context, status int, results interface{}, p *models.Pagination) {
	c.Header("Cache-Control", "no-store")
	envelope := Envelope{Results: results}
	if p != nil {
		envelope.Count = &p.Count
		envelope.Next = p.Next
		envelope.Previous = p.Previous
	}
	c.JSON(status, envelope)
}

// JSON sends a detail payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
