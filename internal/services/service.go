package services

import (
	"context"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService defines the interface for bettor authentication operations
type AuthService interface {
	// Register creates a bettor account with a hashed password
	Register(ctx context.Context, req *models.RegisterBettorRequest) (*models.Bettor, error)

	// Login verifies credentials and issues a bearer token
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)

	// FindBettorByID resolves a bettor, used by the bearer middleware
	FindBettorByID(ctx context.Context, id primitive.ObjectID) (*models.Bettor, error)
}

// GameService defines the interface for game identity operations
type GameService interface {
	// Register creates a game and mints its API key
	Register(ctx context.Context, name string) (*models.Game, error)

	// FindByAPIKey resolves a game from its API key credential
	FindByAPIKey(ctx context.Context, apiKey string) (*models.Game, error)

	// FindByID resolves a game by id
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
}

// GamerService defines the interface for gamer identity resolution
type GamerService interface {
	// FindOrRegister resolves the gamer for (game, externalGamerID),
	// creating it if absent. Idempotent per pair: concurrent calls yield
	// exactly one record.
	FindOrRegister(ctx context.Context, gameID primitive.ObjectID, externalGamerID string) (*models.Gamer, error)

	// FindByID resolves a gamer by id
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gamer, error)
}

// TournamentService defines the interface for tournament management
type TournamentService interface {
	// Create creates a draft tournament owned by the game
	Create(ctx context.Context, gameID primitive.ObjectID, req *models.CreateTournamentRequest) (*models.Tournament, error)

	// Publish opens a draft tournament for entries and predictions
	Publish(ctx context.Context, gameID, tournamentID primitive.ObjectID) (*models.Tournament, error)

	// FindByID retrieves a tournament
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error)

	// ListByGame retrieves the tournaments owned by a game
	ListByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Tournament, error)

	// SetOptionOdds updates the odds of an option belonging to one of the
	// game's tournaments. Placed predictions keep their odds snapshot.
	SetOptionOdds(ctx context.Context, gameID, optionID primitive.ObjectID, odds float64) (*models.PredictionOption, error)
}

// EntryService defines the interface for the tournament entry workflow
type EntryService interface {
	// Enter enters a gamer into a tournament: validates eligibility,
	// resolves the gamer, and commits the entry, its prediction option and
	// the prize-pool increment as one unit.
	Enter(ctx context.Context, gameID, tournamentID primitive.ObjectID, externalGamerID string) (*models.EntryDetail, error)

	// ListByTournament retrieves a tournament's entries
	ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.TournamentEntry, error)
}

// PredictionService defines the interface for the prediction workflow
type PredictionService interface {
	// Place places a bettor's prediction on an option: snapshots current
	// odds and commits the record plus both counter increments as one unit.
	Place(ctx context.Context, bettorID, optionID primitive.ObjectID, amount float64) (*models.PredictionDetail, error)

	// ListByBettor retrieves the bettor's predictions
	ListByBettor(ctx context.Context, bettorID primitive.ObjectID) ([]*models.Prediction, error)
}
