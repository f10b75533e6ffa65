package services

import (
	"context"
	"fmt"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"github.com/Nexra-Labs/nexrahub-core/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure GameServiceImpl implements GameService
var _ GameService = (*GameServiceImpl)(nil)

// GameServiceImpl handles game identity: registration with API key
// minting, and resolution by key or id.
type GameServiceImpl struct {
	gameRepo repositories.GameRepository
}

// NewGameService creates a new GameServiceImpl
func NewGameService(gameRepo repositories.GameRepository) *GameServiceImpl {
	return &GameServiceImpl{gameRepo: gameRepo}
}

// Register creates a game and mints its API key. The key is returned once
// in the created document; it is the game's credential for entering
// gamers into tournaments.
func (s *GameServiceImpl) Register(ctx context.Context, name string) (*models.Game, error) {
	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}

	game := &models.Game{
		Name:   name,
		APIKey: apiKey,
		Status: models.GameStatusActive,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	slog.Info("game registered", "game", game.ID.Hex(), "name", name)
	return game, nil
}

// FindByAPIKey resolves a game from its API key credential
func (s *GameServiceImpl) FindByAPIKey(ctx context.Context, apiKey string) (*models.Game, error) {
	return s.gameRepo.FindByAPIKey(ctx, apiKey)
}

// FindByID resolves a game by id
func (s *GameServiceImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	return s.gameRepo.FindByID(ctx, id)
}
