package handlers

import (
	"errors"
	"net/http"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to HTTP status codes.
// Consistency failures deliberately surface as 500s: the commit rolled
// back and the caller must not be told anything succeeded.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrGameNotFound),
		errors.Is(err, models.ErrTournamentNotFound),
		errors.Is(err, models.ErrGamerNotFound),
		errors.Is(err, models.ErrBettorNotFound),
		errors.Is(err, models.ErrEntryNotFound),
		errors.Is(err, models.ErrOptionNotFound),
		errors.Is(err, models.ErrPredictionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrTournamentNotOpen),
		errors.Is(err, models.ErrTournamentStarted),
		errors.Is(err, models.ErrPredictionClosed),
		errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrDuplicateEntry),
		errors.Is(err, models.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
