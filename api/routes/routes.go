package routes

import (
	"github.com/Nexra-Labs/nexrahub-core/internal/config"
	"github.com/Nexra-Labs/nexrahub-core/internal/handlers"
	"github.com/Nexra-Labs/nexrahub-core/internal/middleware"
	"github.com/Nexra-Labs/nexrahub-core/internal/services"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies carries the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	GameHandler       *handlers.GameHandler
	TournamentHandler *handlers.TournamentHandler
	EntryHandler      *handlers.EntryHandler
	PredictionHandler *handlers.PredictionHandler

	AuthService services.AuthService
	GameService services.GameService
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		public.POST("/games", deps.GameHandler.Register)
		public.GET("/tournaments/:id", deps.TournamentHandler.GetByID)
		public.GET("/tournaments/:id/entries", deps.EntryHandler.ListByTournament)
	}

	// Game routes, authenticated with the game's API key
	game := router.Group("/api/v1")
	game.Use(middleware.APIKeyAuth(deps.GameService))
	{
		game.GET("/games/me", deps.GameHandler.Me)
		game.GET("/tournaments", deps.TournamentHandler.ListMine)
		game.POST("/tournaments", deps.TournamentHandler.Create)
		game.POST("/tournaments/:id/publish", deps.TournamentHandler.Publish)
		game.POST("/tournaments/:id/entries", deps.EntryHandler.Enter)
		game.PATCH("/options/:id/odds", deps.TournamentHandler.SetOptionOdds)
	}

	// Bettor routes, authenticated with a bearer token
	bettor := router.Group("/api/v1")
	bettor.Use(middleware.BearerAuth(cfg, deps.AuthService))
	{
		bettor.POST("/predictions", deps.PredictionHandler.Place)
		bettor.GET("/predictions", deps.PredictionHandler.ListMine)
	}

	return router
}
