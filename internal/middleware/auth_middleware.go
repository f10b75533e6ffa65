package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Nexra-Labs/nexrahub-core/internal/config"
	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by the auth middlewares
const (
	ContextBettor = "bettor"
	ContextGame   = "game"
)

// BearerAuth creates a gin middleware validating the bettor's JWT and
// injecting the resolved bettor into the context.
func BearerAuth(cfg *config.Config, authService services.AuthService) gin.HandlerFunc {
	jwtSecret := []byte(cfg.JWT.Secret)

	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Bearer token"})
			return
		}
		tokenString := authHeader[len(bearerSchema):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			}
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		sub, _ := claims["sub"].(string)
		bettorID, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			return
		}

		bettor, err := authService.FindBettorByID(c.Request.Context(), bettorID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			return
		}

		c.Set(ContextBettor, bettor)
		c.Next()
	}
}

// APIKeyAuth creates a gin middleware validating a game's API key, taken
// from the X-API-Key header or the apiKey query parameter, and injecting
// the resolved game into the context.
func APIKeyAuth(gameService services.GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			apiKey = c.Query("apiKey")
		}
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
			return
		}

		game, err := gameService.FindByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
			return
		}
		if game.Status != models.GameStatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Game is disabled"})
			return
		}

		c.Set(ContextGame, game)
		c.Next()
	}
}

// ActiveGame returns the game injected by APIKeyAuth
func ActiveGame(c *gin.Context) (*models.Game, bool) {
	value, exists := c.Get(ContextGame)
	if !exists {
		return nil, false
	}
	game, ok := value.(*models.Game)
	return game, ok
}

// ActiveBettor returns the bettor injected by BearerAuth
func ActiveBettor(c *gin.Context) (*models.Bettor, bool) {
	value, exists := c.Get(ContextBettor)
	if !exists {
		return nil, false
	}
	bettor, ok := value.(*models.Bettor)
	return bettor, ok
}
