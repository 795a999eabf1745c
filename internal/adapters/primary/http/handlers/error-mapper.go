package handlers

import (
	"errors"
	"net/http"

	"disease-diagnosis-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrUnknownDomain):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Shape errors
	case errors.Is(err, domain.ErrSchemaMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidFeature),
		errors.Is(err, domain.ErrMissingFeature):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
