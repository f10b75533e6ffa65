package repositories

import (
	"context"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxRunner executes a function inside a single transactional boundary.
// Writes issued with the context passed to fn commit together or not at
// all; if fn returns an error the transaction is aborted and the error is
// returned. Workflows use this to make their multi-document commits
// all-or-nothing.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GameRepository defines the interface for game data operations
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*models.Game, error)
}

// GamerRepository defines the interface for gamer identity operations.
// FindOrCreate is idempotent per (game, gamerId): concurrent calls for the
// same pair resolve to the same single record, enforced by a unique index
// at the storage layer.
type GamerRepository interface {
	FindOrCreate(ctx context.Context, gameID primitive.ObjectID, gamerID string) (*models.Gamer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gamer, error)
}

// BettorRepository defines the interface for bettor data operations
type BettorRepository interface {
	Create(ctx context.Context, bettor *models.Bettor) error
	FindByEmail(ctx context.Context, email string) (*models.Bettor, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bettor, error)
}

// TournamentRepository defines the interface for tournament data operations.
// Both increment methods are atomic field increments at the storage layer;
// they never read-modify-write and are safe under arbitrary concurrent
// callers. Deltas must be positive.
type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error)
	FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error
	IncrementPrizePool(ctx context.Context, id primitive.ObjectID, delta float64) error
	IncrementTotalPredictionAmount(ctx context.Context, id primitive.ObjectID, delta float64) error
}

// TournamentEntryRepository defines the interface for entry data operations.
// Entries are append-only; Create returns models.ErrDuplicateEntry when the
// (tournament, gamer) pair already has one.
type TournamentEntryRepository interface {
	Create(ctx context.Context, entry *models.TournamentEntry) error
	FindByTournamentAndGamer(ctx context.Context, tournamentID, gamerID primitive.ObjectID) (*models.TournamentEntry, error)
	FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.TournamentEntry, error)
}

// PredictionOptionRepository defines the interface for option data
// operations. Create returns models.ErrDuplicateOption for a second option
// on the same (tournament, gamer) pair.
type PredictionOptionRepository interface {
	Create(ctx context.Context, option *models.PredictionOption) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PredictionOption, error)
	FindByIDWithTournament(ctx context.Context, id primitive.ObjectID) (*models.OptionWithTournament, error)
	IncrementTotalAmount(ctx context.Context, id primitive.ObjectID, delta float64) error
	UpdateOdds(ctx context.Context, id primitive.ObjectID, odds float64) error
}

// PredictionRepository defines the interface for prediction data operations
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prediction, error)
	FindByBettor(ctx context.Context, bettorID primitive.ObjectID) ([]*models.Prediction, error)
}
