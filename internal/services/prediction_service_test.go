package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// enteredOption seeds a published tournament with one entered gamer and
// returns the resulting prediction option.
func enteredOption(t *testing.T, f *fixture) (*models.Tournament, *models.PredictionOption) {
	t.Helper()
	game := f.seedGame(t)
	tournament := f.seedTournament(t, game.ID, models.TournamentStatusPublished, 10, f.clock.Add(time.Hour))
	detail, err := f.entryService.Enter(context.Background(), game.ID, tournament.ID, "player-1")
	if err != nil {
		t.Fatalf("enter tournament: %v", err)
	}
	for _, option := range f.store.options {
		if option.Gamer == detail.Entry.Gamer {
			o := option
			return tournament, &o
		}
	}
	t.Fatal("no option created for entry")
	return nil, nil
}

func TestPlacePredictionSuccess(t *testing.T) {
	f := newFixture(t)
	tournament, option := enteredOption(t, f)
	bettorID := primitive.NewObjectID()

	detail, err := f.predictionService.Place(context.Background(), bettorID, option.ID, 5)
	if err != nil {
		t.Fatalf("place prediction: %v", err)
	}

	if detail.Prediction.OddsAtPlacement != 2.0 {
		t.Fatalf("expected odds snapshot 2.0, got %v", detail.Prediction.OddsAtPlacement)
	}
	if detail.Prediction.Amount != 5 {
		t.Fatalf("expected amount 5, got %v", detail.Prediction.Amount)
	}
	if detail.Option.Gamer.GamerID != "player-1" {
		t.Fatalf("expected gamer identity populated, got %q", detail.Option.Gamer.GamerID)
	}
	if detail.Option.Tournament.Name != "Spring Cup" {
		t.Fatalf("expected tournament summary populated, got %q", detail.Option.Tournament.Name)
	}

	stored, err := f.optionRepo.FindByID(context.Background(), option.ID)
	if err != nil {
		t.Fatalf("load option: %v", err)
	}
	if stored.TotalPredictionAmount != 5 {
		t.Fatalf("expected option total 5, got %v", stored.TotalPredictionAmount)
	}
	state := f.tournamentState(t, tournament.ID)
	if state.TotalPredictionAmount != 5 {
		t.Fatalf("expected tournament total 5, got %v", state.TotalPredictionAmount)
	}
}

func TestPlacePredictionOptionNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.predictionService.Place(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 5)
	if !errors.Is(err, models.ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestPlacePredictionTournamentNotPublished(t *testing.T) {
	f := newFixture(t)
	tournament, option := enteredOption(t, f)

	if err := f.tournamentRepo.UpdateStatus(context.Background(), tournament.ID, models.TournamentStatusClosed); err != nil {
		t.Fatalf("close tournament: %v", err)
	}

	_, err := f.predictionService.Place(context.Background(), primitive.NewObjectID(), option.ID, 5)
	if !errors.Is(err, models.ErrPredictionClosed) {
		t.Fatalf("expected ErrPredictionClosed, got %v", err)
	}
	if len(f.store.predictions) != 0 {
		t.Fatal("expected no prediction written")
	}
}

func TestPlacePredictionOddsSnapshotImmutable(t *testing.T) {
	f := newFixture(t)
	_, option := enteredOption(t, f)
	bettorID := primitive.NewObjectID()

	detail, err := f.predictionService.Place(context.Background(), bettorID, option.ID, 5)
	if err != nil {
		t.Fatalf("place prediction: %v", err)
	}

	// Odds move after placement; the snapshot must not
	if err := f.optionRepo.UpdateOdds(context.Background(), option.ID, 3.5); err != nil {
		t.Fatalf("update odds: %v", err)
	}

	stored, err := f.predictionRepo.FindByID(context.Background(), detail.Prediction.ID)
	if err != nil {
		t.Fatalf("load prediction: %v", err)
	}
	if stored.OddsAtPlacement != 2.0 {
		t.Fatalf("expected snapshot 2.0 after odds change, got %v", stored.OddsAtPlacement)
	}

	// A later prediction sees the new odds
	second, err := f.predictionService.Place(context.Background(), bettorID, option.ID, 2)
	if err != nil {
		t.Fatalf("place second prediction: %v", err)
	}
	if second.Prediction.OddsAtPlacement != 3.5 {
		t.Fatalf("expected new snapshot 3.5, got %v", second.Prediction.OddsAtPlacement)
	}
}

func TestPlacePredictionRollsBackWhenTournamentIncrementFails(t *testing.T) {
	f := newFixture(t)
	tournament, option := enteredOption(t, f)

	f.store.failTournamentTotal = errors.New("write concern error")

	_, err := f.predictionService.Place(context.Background(), primitive.NewObjectID(), option.ID, 5)
	if !errors.Is(err, models.ErrConsistency) {
		t.Fatalf("expected ErrConsistency, got %v", err)
	}

	// Neither the record nor the option increment survives the abort
	if len(f.store.predictions) != 0 {
		t.Fatalf("expected no predictions after rollback, got %d", len(f.store.predictions))
	}
	stored, err := f.optionRepo.FindByID(context.Background(), option.ID)
	if err != nil {
		t.Fatalf("load option: %v", err)
	}
	if stored.TotalPredictionAmount != 0 {
		t.Fatalf("expected option total 0 after rollback, got %v", stored.TotalPredictionAmount)
	}
	state := f.tournamentState(t, tournament.ID)
	if state.TotalPredictionAmount != 0 {
		t.Fatalf("expected tournament total 0 after rollback, got %v", state.TotalPredictionAmount)
	}
}

func TestConcurrentPredictionsTotalsMatchSum(t *testing.T) {
	f := newFixture(t)
	tournament, option := enteredOption(t, f)

	const bettors = 10
	var wg sync.WaitGroup
	errs := make([]error, bettors)
	for i := 0; i < bettors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.predictionService.Place(context.Background(), primitive.NewObjectID(), option.ID, 3)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("prediction %d failed: %v", i, err)
		}
	}

	var sum float64
	for _, prediction := range f.store.predictions {
		sum += prediction.Amount
	}
	stored, err := f.optionRepo.FindByID(context.Background(), option.ID)
	if err != nil {
		t.Fatalf("load option: %v", err)
	}
	if stored.TotalPredictionAmount != sum {
		t.Fatalf("option total %v does not equal prediction sum %v", stored.TotalPredictionAmount, sum)
	}
	state := f.tournamentState(t, tournament.ID)
	if state.TotalPredictionAmount != sum {
		t.Fatalf("tournament total %v does not equal prediction sum %v", state.TotalPredictionAmount, sum)
	}
}
