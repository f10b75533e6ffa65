package services

import (
	"context"
	"errors"
	"time"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure TournamentServiceImpl implements TournamentService
var _ TournamentService = (*TournamentServiceImpl)(nil)

// TournamentServiceImpl handles tournament lifecycle management. Counter
// mutation is not done here: prize pool and prediction totals are written
// only by the entry and prediction workflows.
type TournamentServiceImpl struct {
	tournamentRepo repositories.TournamentRepository
	optionRepo     repositories.PredictionOptionRepository
	now            func() time.Time
}

// NewTournamentService creates a new TournamentServiceImpl
func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	optionRepo repositories.PredictionOptionRepository,
) *TournamentServiceImpl {
	return &TournamentServiceImpl{
		tournamentRepo: tournamentRepo,
		optionRepo:     optionRepo,
		now:            time.Now,
	}
}

// Create creates a draft tournament owned by the game
func (s *TournamentServiceImpl) Create(ctx context.Context, gameID primitive.ObjectID, req *models.CreateTournamentRequest) (*models.Tournament, error) {
	if !req.StartTime.After(s.now()) {
		return nil, errors.New("start time must be in the future")
	}

	tournament := &models.Tournament{
		Game:        gameID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.TournamentStatusDraft,
		StartTime:   req.StartTime,
		EntryFee:    req.EntryFee,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}

	slog.Info("tournament created", "tournament", tournament.ID.Hex(), "game", gameID.Hex())
	return tournament, nil
}

// Publish opens a draft tournament for entries and predictions
func (s *TournamentServiceImpl) Publish(ctx context.Context, gameID, tournamentID primitive.ObjectID) (*models.Tournament, error) {
	tournament, err := s.findOwned(ctx, gameID, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusDraft {
		return nil, models.ErrInvalidTransition
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, tournamentID, models.TournamentStatusPublished); err != nil {
		return nil, err
	}
	tournament.Status = models.TournamentStatusPublished

	slog.Info("tournament published", "tournament", tournamentID.Hex())
	return tournament, nil
}

// FindByID retrieves a tournament
func (s *TournamentServiceImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	return s.tournamentRepo.FindByID(ctx, id)
}

// ListByGame retrieves the tournaments owned by a game
func (s *TournamentServiceImpl) ListByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Tournament, error) {
	return s.tournamentRepo.FindByGame(ctx, gameID)
}

// SetOptionOdds updates an option's odds. Predictions already placed keep
// their oddsAtPlacement snapshot; only future placements see the new
// value.
func (s *TournamentServiceImpl) SetOptionOdds(ctx context.Context, gameID, optionID primitive.ObjectID, odds float64) (*models.PredictionOption, error) {
	view, err := s.optionRepo.FindByIDWithTournament(ctx, optionID)
	if err != nil {
		return nil, err
	}
	if view.Tournament.Game != gameID {
		return nil, models.ErrOptionNotFound
	}

	if err := s.optionRepo.UpdateOdds(ctx, optionID, odds); err != nil {
		return nil, err
	}
	option := view.Option
	option.Odds = odds
	return &option, nil
}

func (s *TournamentServiceImpl) findOwned(ctx context.Context, gameID, tournamentID primitive.ObjectID) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	// A game cannot see, let alone manage, another game's tournaments
	if tournament.Game != gameID {
		return nil, models.ErrTournamentNotFound
	}
	return tournament, nil
}
