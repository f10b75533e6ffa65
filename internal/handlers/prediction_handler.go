package handlers

import (
	"net/http"

	"github.com/Nexra-Labs/nexrahub-core/internal/middleware"
	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictionHandler handles prediction HTTP requests
type PredictionHandler struct {
	predictionService services.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// Place handles POST /predictions (bearer authenticated)
func (h *PredictionHandler) Place(c *gin.Context) {
	bettor, ok := middleware.ActiveBettor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bettor identity"})
		return
	}

	var request models.PlacePredictionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	optionID, err := primitive.ObjectIDFromHex(request.PredictionOption)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prediction option ID"})
		return
	}

	detail, err := h.predictionService.Place(c.Request.Context(), bettor.ID, optionID, request.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// ListMine handles GET /predictions (bearer authenticated)
func (h *PredictionHandler) ListMine(c *gin.Context) {
	bettor, ok := middleware.ActiveBettor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bettor identity"})
		return
	}

	predictions, err := h.predictionService.ListByBettor(c.Request.Context(), bettor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, predictions)
}
