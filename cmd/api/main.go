package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nexra-Labs/nexrahub-core/api/routes"
	"github.com/Nexra-Labs/nexrahub-core/internal/config"
	"github.com/Nexra-Labs/nexrahub-core/internal/handlers"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	mongorepo "github.com/Nexra-Labs/nexrahub-core/internal/repositories/mongodb"
	"github.com/Nexra-Labs/nexrahub-core/internal/services"
	mongodb "github.com/Nexra-Labs/nexrahub-core/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	gameRepo := mongorepo.NewGameRepository(db)
	gamerRepo := mongorepo.NewGamerRepository(db)
	bettorRepo := mongorepo.NewBettorRepository(db)
	tournamentRepo := mongorepo.NewTournamentRepository(db)
	entryRepo := mongorepo.NewTournamentEntryRepository(db)
	optionRepo := mongorepo.NewPredictionOptionRepository(db)
	predictionRepo := mongorepo.NewPredictionRepository(db)
	var txRunner repositories.TxRunner = mongorepo.NewTxRunner(mongoClient.Mongo())

	// The uniqueness invariants (one gamer per (game, gamerId), one entry
	// and one option per (tournament, gamer)) live in these indexes;
	// refusing to start without them is the safe failure mode.
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	for _, ensure := range []func(context.Context) error{
		gameRepo.EnsureIndexes,
		gamerRepo.EnsureIndexes,
		bettorRepo.EnsureIndexes,
		entryRepo.EnsureIndexes,
		optionRepo.EnsureIndexes,
		predictionRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			slog.Error("failed to ensure indexes", "error", err)
			os.Exit(1)
		}
	}

	// Services
	authService := services.NewAuthService(bettorRepo, cfg)
	gameService := services.NewGameService(gameRepo)
	gamerService := services.NewGamerService(gamerRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, optionRepo)
	entryService := services.NewEntryService(gameService, gamerService, tournamentRepo, entryRepo, optionRepo, txRunner)
	predictionService := services.NewPredictionService(predictionRepo, optionRepo, tournamentRepo, gamerService, txRunner)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		GameHandler:       handlers.NewGameHandler(gameService),
		TournamentHandler: handlers.NewTournamentHandler(tournamentService),
		EntryHandler:      handlers.NewEntryHandler(entryService),
		PredictionHandler: handlers.NewPredictionHandler(predictionService),
		AuthService:       authService,
		GameService:       gameService,
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("server starting", "port", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}
