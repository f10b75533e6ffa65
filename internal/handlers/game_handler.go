package handlers

import (
	"net/http"

	"github.com/Nexra-Labs/nexrahub-core/internal/middleware"
	"github.com/Nexra-Labs/nexrahub-core/internal/services"
	"github.com/gin-gonic/gin"
)

// GameHandler handles game registration and identity HTTP requests
type GameHandler struct {
	gameService services.GameService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// RegisterGameRequest is the payload for game registration
type RegisterGameRequest struct {
	Name string `json:"name" binding:"required"`
}

// Register handles POST /games. The response carries the minted API key;
// it is not retrievable afterwards.
func (h *GameHandler) Register(c *gin.Context) {
	var request RegisterGameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.Register(c.Request.Context(), request.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// Me handles GET /games/me, echoing the game resolved from the API key
func (h *GameHandler) Me(c *gin.Context) {
	game, ok := middleware.ActiveGame(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing game identity"})
		return
	}
	game.APIKey = ""
	c.JSON(http.StatusOK, game)
}
