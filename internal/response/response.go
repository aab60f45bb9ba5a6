package response

import (
	"errors"
	"net/http"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	"github.com/gin-gonic/gin"
)

// Success writes a 200 response with the payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// Paginated writes a 200 response with listing metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// BadRequest writes a 400 response with the message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Error maps a domain error onto its HTTP status. Non-domain errors become
// opaque 500s.
func Error(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case domain.KindUnauthenticated:
		status = http.StatusUnauthorized
	case domain.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"error": de.Message})
}
