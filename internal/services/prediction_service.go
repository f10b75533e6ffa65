package services

import (
	"context"
	"fmt"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PredictionServiceImpl implements PredictionService
var _ PredictionService = (*PredictionServiceImpl)(nil)

// PredictionServiceImpl orchestrates prediction placement. The commit step
// writes the prediction record and both running totals (option and
// tournament) inside one transaction so each total always equals the sum
// of its predictions.
type PredictionServiceImpl struct {
	predictionRepo repositories.PredictionRepository
	optionRepo     repositories.PredictionOptionRepository
	tournamentRepo repositories.TournamentRepository
	gamerService   GamerService
	tx             repositories.TxRunner
}

// NewPredictionService creates a new PredictionServiceImpl
func NewPredictionService(
	predictionRepo repositories.PredictionRepository,
	optionRepo repositories.PredictionOptionRepository,
	tournamentRepo repositories.TournamentRepository,
	gamerService GamerService,
	tx repositories.TxRunner,
) *PredictionServiceImpl {
	return &PredictionServiceImpl{
		predictionRepo: predictionRepo,
		optionRepo:     optionRepo,
		tournamentRepo: tournamentRepo,
		gamerService:   gamerService,
		tx:             tx,
	}
}

// Place places a bettor's prediction on an option.
//
// The option is loaded with its tournament joined so the published check
// and the odds snapshot come from one consistent read. OddsAtPlacement is
// fixed at this instant; later odds changes never touch placed
// predictions.
func (s *PredictionServiceImpl) Place(ctx context.Context, bettorID, optionID primitive.ObjectID, amount float64) (*models.PredictionDetail, error) {
	view, err := s.optionRepo.FindByIDWithTournament(ctx, optionID)
	if err != nil {
		return nil, err
	}
	if view.Tournament.Status != models.TournamentStatusPublished {
		return nil, models.ErrPredictionClosed
	}

	prediction := &models.Prediction{
		Bettor:           bettorID,
		PredictionOption: optionID,
		Amount:           amount,
		OddsAtPlacement:  view.Option.Odds,
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.predictionRepo.Create(txCtx, prediction); err != nil {
			return err
		}
		if err := s.optionRepo.IncrementTotalAmount(txCtx, optionID, amount); err != nil {
			return err
		}
		return s.tournamentRepo.IncrementTotalPredictionAmount(txCtx, view.Tournament.ID, amount)
	})
	if err != nil {
		slog.Error("prediction commit rolled back",
			"option", optionID.Hex(), "bettor", bettorID.Hex(), "error", err)
		return nil, fmt.Errorf("%w: %v", models.ErrConsistency, err)
	}

	slog.Info("prediction placed",
		"option", optionID.Hex(), "bettor", bettorID.Hex(),
		"amount", amount, "odds", prediction.OddsAtPlacement)

	gamer, err := s.gamerService.FindByID(ctx, view.Option.Gamer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve option gamer: %w", err)
	}

	return &models.PredictionDetail{
		Prediction: prediction,
		Option: models.OptionSummary{
			ID:                    view.Option.ID,
			Odds:                  view.Option.Odds,
			TotalPredictionAmount: view.Option.TotalPredictionAmount + amount,
			Gamer: models.GamerSummary{
				ID:      gamer.ID,
				GamerID: gamer.GamerID,
			},
			Tournament: models.TournamentSummary{
				ID:                    view.Tournament.ID,
				Name:                  view.Tournament.Name,
				Description:           view.Tournament.Description,
				TotalPredictionAmount: view.Tournament.TotalPredictionAmount + amount,
			},
		},
	}, nil
}

// ListByBettor retrieves the bettor's predictions
func (s *PredictionServiceImpl) ListByBettor(ctx context.Context, bettorID primitive.ObjectID) ([]*models.Prediction, error) {
	return s.predictionRepo.FindByBettor(ctx, bettorID)
}
