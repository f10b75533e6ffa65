package handlers

import (
	"net/http"

	"github.com/Nexra-Labs/nexrahub-core/internal/middleware"
	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentHandler handles tournament management HTTP requests
type TournamentHandler struct {
	tournamentService services.TournamentService
}

// NewTournamentHandler creates a new TournamentHandler
func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

// Create handles POST /tournaments (API-key authenticated)
func (h *TournamentHandler) Create(c *gin.Context) {
	game, ok := middleware.ActiveGame(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing game identity"})
		return
	}

	var request models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.Create(c.Request.Context(), game.ID, &request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tournament)
}

// Publish handles POST /tournaments/:id/publish (API-key authenticated)
func (h *TournamentHandler) Publish(c *gin.Context) {
	game, ok := middleware.ActiveGame(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing game identity"})
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	tournament, err := h.tournamentService.Publish(c.Request.Context(), game.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// GetByID handles GET /tournaments/:id
func (h *TournamentHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	tournament, err := h.tournamentService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// ListMine handles GET /tournaments (API-key authenticated)
func (h *TournamentHandler) ListMine(c *gin.Context) {
	game, ok := middleware.ActiveGame(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing game identity"})
		return
	}

	tournaments, err := h.tournamentService.ListByGame(c.Request.Context(), game.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// SetOptionOddsRequest is the payload for updating an option's odds
type SetOptionOddsRequest struct {
	Odds float64 `json:"odds" binding:"required,gt=1"`
}

// SetOptionOdds handles PATCH /options/:id/odds (API-key authenticated)
func (h *TournamentHandler) SetOptionOdds(c *gin.Context) {
	game, ok := middleware.ActiveGame(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing game identity"})
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request SetOptionOddsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	option, err := h.tournamentService.SetOptionOdds(c.Request.Context(), game.ID, id, request.Odds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, option)
}
