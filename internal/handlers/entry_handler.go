package handlers

import (
	"net/http"

	"github.com/Nexra-Labs/nexrahub-core/internal/middleware"
	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntryHandler handles tournament entry HTTP requests
type EntryHandler struct {
	entryService services.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService services.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Enter handles POST /tournaments/:id/entries (API-key authenticated).
// The gamer field is the calling game's external id for the player.
func (h *EntryHandler) Enter(c *gin.Context) {
	game, ok := middleware.ActiveGame(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing game identity"})
		return
	}
	tournamentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request models.CreateEntryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.entryService.Enter(c.Request.Context(), game.ID, tournamentID, request.Gamer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// ListByTournament handles GET /tournaments/:id/entries
func (h *EntryHandler) ListByTournament(c *gin.Context) {
	tournamentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	entries, err := h.entryService.ListByTournament(c.Request.Context(), tournamentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
