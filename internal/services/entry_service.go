package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure EntryServiceImpl implements EntryService
var _ EntryService = (*EntryServiceImpl)(nil)

// EntryServiceImpl orchestrates tournament entry. The commit step writes
// three documents' worth of state (entry, option, prize pool) inside one
// transaction so the prize pool always equals the sum of accepted entry
// fees.
type EntryServiceImpl struct {
	gameService    GameService
	gamerService   GamerService
	tournamentRepo repositories.TournamentRepository
	entryRepo      repositories.TournamentEntryRepository
	optionRepo     repositories.PredictionOptionRepository
	tx             repositories.TxRunner
	now            func() time.Time
}

// NewEntryService creates a new EntryServiceImpl
func NewEntryService(
	gameService GameService,
	gamerService GamerService,
	tournamentRepo repositories.TournamentRepository,
	entryRepo repositories.TournamentEntryRepository,
	optionRepo repositories.PredictionOptionRepository,
	tx repositories.TxRunner,
) *EntryServiceImpl {
	return &EntryServiceImpl{
		gameService:    gameService,
		gamerService:   gamerService,
		tournamentRepo: tournamentRepo,
		entryRepo:      entryRepo,
		optionRepo:     optionRepo,
		tx:             tx,
		now:            time.Now,
	}
}

// Enter enters a gamer into a tournament.
//
// All validation happens before any write: game and tournament must exist,
// the tournament must be published and not yet started (entry at exactly
// startTime is rejected), and the gamer must not already hold an entry.
// The only writes before the commit is the idempotent gamer upsert, which
// is safe to repeat.
func (s *EntryServiceImpl) Enter(ctx context.Context, gameID, tournamentID primitive.ObjectID, externalGamerID string) (*models.EntryDetail, error) {
	if _, err := s.gameService.FindByID(ctx, gameID); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.FindByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusPublished {
		return nil, models.ErrTournamentNotOpen
	}
	if !tournament.StartTime.After(s.now()) {
		return nil, models.ErrTournamentStarted
	}

	// Gamer identity is scoped to the tournament's owning game
	gamer, err := s.gamerService.FindOrRegister(ctx, tournament.Game, externalGamerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve gamer: %w", err)
	}

	_, err = s.entryRepo.FindByTournamentAndGamer(ctx, tournamentID, gamer.ID)
	if err == nil {
		return nil, models.ErrDuplicateEntry
	}
	if !errors.Is(err, models.ErrEntryNotFound) {
		return nil, fmt.Errorf("failed to check for existing entry: %w", err)
	}

	// EntryFee is snapshotted here; later fee edits never change it
	entry := &models.TournamentEntry{
		Tournament: tournamentID,
		Gamer:      gamer.ID,
		EntryFee:   tournament.EntryFee,
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.entryRepo.Create(txCtx, entry); err != nil {
			return err
		}
		// The option exists iff the entry committed: it is created from
		// the entry inside the same transaction, never as an independent
		// sibling write.
		option := &models.PredictionOption{
			Tournament: tournamentID,
			Gamer:      gamer.ID,
			Odds:       models.DefaultOdds,
		}
		if err := s.optionRepo.Create(txCtx, option); err != nil {
			return err
		}
		return s.tournamentRepo.IncrementPrizePool(txCtx, tournamentID, tournament.EntryFee)
	})
	if err != nil {
		// A concurrent entry for the same pair loses the unique-index race
		// inside the transaction; surface it as the duplicate it is.
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, err
		}
		slog.Error("entry commit rolled back", "tournament", tournamentID.Hex(), "gamer", gamer.ID.Hex(), "error", err)
		return nil, fmt.Errorf("%w: %v", models.ErrConsistency, err)
	}

	slog.Info("tournament entry accepted",
		"tournament", tournamentID.Hex(), "gamer", gamer.ID.Hex(), "entryFee", entry.EntryFee)

	return &models.EntryDetail{
		Entry: entry,
		Tournament: models.TournamentSummary{
			ID:   tournament.ID,
			Name: tournament.Name,
		},
	}, nil
}

// ListByTournament retrieves a tournament's entries
func (s *EntryServiceImpl) ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.TournamentEntry, error) {
	if _, err := s.tournamentRepo.FindByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.entryRepo.FindByTournament(ctx, tournamentID)
}
