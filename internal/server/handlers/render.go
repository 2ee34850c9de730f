package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/silotrack/internal/domain/models"
)

// displayTimeLayout formats timestamps for clients, without seconds.
const displayTimeLayout = "2006-01-02 15:04"

// writeError maps a domain error to its client-facing status. Anything
// outside the taxonomy is a server fault and stays opaque.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrCerealMismatch),
		errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// formatTimestamp localizes a stored UTC instant for display.
func formatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(displayTimeLayout)
}

// cerealOrNil renders an unset cereal as null instead of an empty string.
func cerealOrNil(cereal models.Cereal) *models.Cereal {
	if cereal == "" {
		return nil
	}
	return &cereal
}
