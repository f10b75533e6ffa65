package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the MongoDB repositories. It
// enforces the same uniqueness rules the real indexes do and supports
// forced write failures so rollback behavior can be exercised.
type memStore struct {
	mu sync.Mutex

	games       map[primitive.ObjectID]models.Game
	gamers      map[string]models.Gamer
	bettors     map[primitive.ObjectID]models.Bettor
	tournaments map[primitive.ObjectID]models.Tournament
	entries     map[string]models.TournamentEntry
	options     map[primitive.ObjectID]models.PredictionOption
	optionPairs map[string]primitive.ObjectID
	predictions map[primitive.ObjectID]models.Prediction

	failEntryCreate      error
	failOptionCreate     error
	failPredictionCreate error
	failPrizePool        error
	failTournamentTotal  error
	failOptionTotal      error
}

func newMemStore() *memStore {
	return &memStore{
		games:       make(map[primitive.ObjectID]models.Game),
		gamers:      make(map[string]models.Gamer),
		bettors:     make(map[primitive.ObjectID]models.Bettor),
		tournaments: make(map[primitive.ObjectID]models.Tournament),
		entries:     make(map[string]models.TournamentEntry),
		options:     make(map[primitive.ObjectID]models.PredictionOption),
		optionPairs: make(map[string]primitive.ObjectID),
		predictions: make(map[primitive.ObjectID]models.Prediction),
	}
}

func pairKey(a primitive.ObjectID, b string) string { return a.Hex() + "/" + b }

func entryKey(t, g primitive.ObjectID) string { return t.Hex() + "/" + g.Hex() }

// txSnapshot covers the collections the workflows write inside
// transactions. Identity collections are excluded: they are only written
// outside transactional boundaries.
type txSnapshot struct {
	tournaments map[primitive.ObjectID]models.Tournament
	entries     map[string]models.TournamentEntry
	options     map[primitive.ObjectID]models.PredictionOption
	optionPairs map[string]primitive.ObjectID
	predictions map[primitive.ObjectID]models.Prediction
}

func (s *memStore) snapshot() txSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := txSnapshot{
		tournaments: make(map[primitive.ObjectID]models.Tournament, len(s.tournaments)),
		entries:     make(map[string]models.TournamentEntry, len(s.entries)),
		options:     make(map[primitive.ObjectID]models.PredictionOption, len(s.options)),
		optionPairs: make(map[string]primitive.ObjectID, len(s.optionPairs)),
		predictions: make(map[primitive.ObjectID]models.Prediction, len(s.predictions)),
	}
	for k, v := range s.tournaments {
		snap.tournaments[k] = v
	}
	for k, v := range s.entries {
		snap.entries[k] = v
	}
	for k, v := range s.options {
		snap.options[k] = v
	}
	for k, v := range s.optionPairs {
		snap.optionPairs[k] = v
	}
	for k, v := range s.predictions {
		snap.predictions[k] = v
	}
	return snap
}

func (s *memStore) restore(snap txSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments = snap.tournaments
	s.entries = snap.entries
	s.options = snap.options
	s.optionPairs = snap.optionPairs
	s.predictions = snap.predictions
}

// memTx serializes transactions and restores the pre-transaction state
// when the callback fails, mirroring an aborted MongoDB transaction.
type memTx struct {
	store *memStore
	txMu  sync.Mutex

	rollbacks int
}

func (t *memTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		t.rollbacks++
		return err
	}
	return nil
}

// --- repository adapters ---

type memGameRepo struct{ s *memStore }

func (r *memGameRepo) Create(ctx context.Context, game *models.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	game.ID = primitive.NewObjectID()
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()
	r.s.games[game.ID] = *game
	return nil
}

func (r *memGameRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	game, ok := r.s.games[id]
	if !ok {
		return nil, models.ErrGameNotFound
	}
	return &game, nil
}

func (r *memGameRepo) FindByAPIKey(ctx context.Context, apiKey string) (*models.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, game := range r.s.games {
		if game.APIKey == apiKey {
			g := game
			return &g, nil
		}
	}
	return nil, models.ErrGameNotFound
}

type memGamerRepo struct{ s *memStore }

func (r *memGamerRepo) FindOrCreate(ctx context.Context, gameID primitive.ObjectID, gamerID string) (*models.Gamer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey(gameID, gamerID)
	if gamer, ok := r.s.gamers[key]; ok {
		return &gamer, nil
	}
	gamer := models.Gamer{
		ID:        primitive.NewObjectID(),
		Game:      gameID,
		GamerID:   gamerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.s.gamers[key] = gamer
	return &gamer, nil
}

func (r *memGamerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gamer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, gamer := range r.s.gamers {
		if gamer.ID == id {
			g := gamer
			return &g, nil
		}
	}
	return nil, models.ErrGamerNotFound
}

type memBettorRepo struct{ s *memStore }

func (r *memBettorRepo) Create(ctx context.Context, bettor *models.Bettor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.bettors {
		if existing.Email == bettor.Email {
			return models.ErrEmailTaken
		}
	}
	bettor.ID = primitive.NewObjectID()
	bettor.CreatedAt = time.Now()
	bettor.UpdatedAt = time.Now()
	r.s.bettors[bettor.ID] = *bettor
	return nil
}

func (r *memBettorRepo) FindByEmail(ctx context.Context, email string) (*models.Bettor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, bettor := range r.s.bettors {
		if bettor.Email == email {
			b := bettor
			return &b, nil
		}
	}
	return nil, models.ErrBettorNotFound
}

func (r *memBettorRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bettor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bettor, ok := r.s.bettors[id]
	if !ok {
		return nil, models.ErrBettorNotFound
	}
	return &bettor, nil
}

type memTournamentRepo struct{ s *memStore }

func (r *memTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tournament.ID = primitive.NewObjectID()
	tournament.CreatedAt = time.Now()
	tournament.UpdatedAt = time.Now()
	r.s.tournaments[tournament.ID] = *tournament
	return nil
}

func (r *memTournamentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tournament, ok := r.s.tournaments[id]
	if !ok {
		return nil, models.ErrTournamentNotFound
	}
	return &tournament, nil
}

func (r *memTournamentRepo) FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*models.Tournament{}
	for _, tournament := range r.s.tournaments {
		if tournament.Game == gameID {
			t := tournament
			result = append(result, &t)
		}
	}
	return result, nil
}

func (r *memTournamentRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tournament, ok := r.s.tournaments[id]
	if !ok {
		return models.ErrTournamentNotFound
	}
	tournament.Status = status
	r.s.tournaments[id] = tournament
	return nil
}

func (r *memTournamentRepo) IncrementPrizePool(ctx context.Context, id primitive.ObjectID, delta float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failPrizePool != nil {
		return r.s.failPrizePool
	}
	tournament, ok := r.s.tournaments[id]
	if !ok {
		return models.ErrTournamentNotFound
	}
	tournament.PrizePool += delta
	r.s.tournaments[id] = tournament
	return nil
}

func (r *memTournamentRepo) IncrementTotalPredictionAmount(ctx context.Context, id primitive.ObjectID, delta float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failTournamentTotal != nil {
		return r.s.failTournamentTotal
	}
	tournament, ok := r.s.tournaments[id]
	if !ok {
		return models.ErrTournamentNotFound
	}
	tournament.TotalPredictionAmount += delta
	r.s.tournaments[id] = tournament
	return nil
}

type memEntryRepo struct{ s *memStore }

func (r *memEntryRepo) Create(ctx context.Context, entry *models.TournamentEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failEntryCreate != nil {
		return r.s.failEntryCreate
	}
	key := entryKey(entry.Tournament, entry.Gamer)
	if _, ok := r.s.entries[key]; ok {
		return models.ErrDuplicateEntry
	}
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	r.s.entries[key] = *entry
	return nil
}

func (r *memEntryRepo) FindByTournamentAndGamer(ctx context.Context, tournamentID, gamerID primitive.ObjectID) (*models.TournamentEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry, ok := r.s.entries[entryKey(tournamentID, gamerID)]
	if !ok {
		return nil, models.ErrEntryNotFound
	}
	return &entry, nil
}

func (r *memEntryRepo) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.TournamentEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*models.TournamentEntry{}
	for _, entry := range r.s.entries {
		if entry.Tournament == tournamentID {
			e := entry
			result = append(result, &e)
		}
	}
	return result, nil
}

type memOptionRepo struct{ s *memStore }

func (r *memOptionRepo) Create(ctx context.Context, option *models.PredictionOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOptionCreate != nil {
		return r.s.failOptionCreate
	}
	key := entryKey(option.Tournament, option.Gamer)
	if _, ok := r.s.optionPairs[key]; ok {
		return models.ErrDuplicateOption
	}
	option.ID = primitive.NewObjectID()
	if option.Odds == 0 {
		option.Odds = models.DefaultOdds
	}
	option.TotalPredictionAmount = 0
	option.CreatedAt = time.Now()
	option.UpdatedAt = time.Now()
	r.s.options[option.ID] = *option
	r.s.optionPairs[key] = option.ID
	return nil
}

func (r *memOptionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PredictionOption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	option, ok := r.s.options[id]
	if !ok {
		return nil, models.ErrOptionNotFound
	}
	return &option, nil
}

func (r *memOptionRepo) FindByIDWithTournament(ctx context.Context, id primitive.ObjectID) (*models.OptionWithTournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	option, ok := r.s.options[id]
	if !ok {
		return nil, models.ErrOptionNotFound
	}
	tournament, ok := r.s.tournaments[option.Tournament]
	if !ok {
		return nil, models.ErrOptionNotFound
	}
	return &models.OptionWithTournament{Option: option, Tournament: tournament}, nil
}

func (r *memOptionRepo) IncrementTotalAmount(ctx context.Context, id primitive.ObjectID, delta float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOptionTotal != nil {
		return r.s.failOptionTotal
	}
	option, ok := r.s.options[id]
	if !ok {
		return models.ErrOptionNotFound
	}
	option.TotalPredictionAmount += delta
	r.s.options[id] = option
	return nil
}

func (r *memOptionRepo) UpdateOdds(ctx context.Context, id primitive.ObjectID, odds float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	option, ok := r.s.options[id]
	if !ok {
		return models.ErrOptionNotFound
	}
	option.Odds = odds
	r.s.options[id] = option
	return nil
}

type memPredictionRepo struct{ s *memStore }

func (r *memPredictionRepo) Create(ctx context.Context, prediction *models.Prediction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failPredictionCreate != nil {
		return r.s.failPredictionCreate
	}
	prediction.ID = primitive.NewObjectID()
	prediction.CreatedAt = time.Now()
	r.s.predictions[prediction.ID] = *prediction
	return nil
}

func (r *memPredictionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prediction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prediction, ok := r.s.predictions[id]
	if !ok {
		return nil, models.ErrPredictionNotFound
	}
	return &prediction, nil
}

func (r *memPredictionRepo) FindByBettor(ctx context.Context, bettorID primitive.ObjectID) ([]*models.Prediction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*models.Prediction{}
	for _, prediction := range r.s.predictions {
		if prediction.Bettor == bettorID {
			p := prediction
			result = append(result, &p)
		}
	}
	return result, nil
}

// --- fixture ---

type fixture struct {
	store *memStore
	tx    *memTx
	clock time.Time

	gameRepo       *memGameRepo
	gamerRepo      *memGamerRepo
	bettorRepo     *memBettorRepo
	tournamentRepo *memTournamentRepo
	entryRepo      *memEntryRepo
	optionRepo     *memOptionRepo
	predictionRepo *memPredictionRepo

	entryService      *EntryServiceImpl
	predictionService *PredictionServiceImpl
	tournamentService *TournamentServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	f := &fixture{
		store:          store,
		tx:             &memTx{store: store},
		clock:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		gameRepo:       &memGameRepo{s: store},
		gamerRepo:      &memGamerRepo{s: store},
		bettorRepo:     &memBettorRepo{s: store},
		tournamentRepo: &memTournamentRepo{s: store},
		entryRepo:      &memEntryRepo{s: store},
		optionRepo:     &memOptionRepo{s: store},
		predictionRepo: &memPredictionRepo{s: store},
	}

	gameService := NewGameService(f.gameRepo)
	gamerService := NewGamerService(f.gamerRepo)

	f.entryService = NewEntryService(gameService, gamerService, f.tournamentRepo, f.entryRepo, f.optionRepo, f.tx)
	f.entryService.now = func() time.Time { return f.clock }

	f.predictionService = NewPredictionService(f.predictionRepo, f.optionRepo, f.tournamentRepo, gamerService, f.tx)

	f.tournamentService = NewTournamentService(f.tournamentRepo, f.optionRepo)
	f.tournamentService.now = func() time.Time { return f.clock }

	return f
}

func (f *fixture) seedGame(t *testing.T) *models.Game {
	t.Helper()
	game := &models.Game{Name: "Test Game", APIKey: "key-" + primitive.NewObjectID().Hex(), Status: models.GameStatusActive}
	if err := f.gameRepo.Create(context.Background(), game); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return game
}

func (f *fixture) seedTournament(t *testing.T, gameID primitive.ObjectID, status models.TournamentStatus, entryFee float64, start time.Time) *models.Tournament {
	t.Helper()
	tournament := &models.Tournament{
		Game:      gameID,
		Name:      "Spring Cup",
		Status:    status,
		StartTime: start,
		EntryFee:  entryFee,
	}
	if err := f.tournamentRepo.Create(context.Background(), tournament); err != nil {
		t.Fatalf("seed tournament: %v", err)
	}
	return tournament
}

func (f *fixture) tournamentState(t *testing.T, id primitive.ObjectID) models.Tournament {
	t.Helper()
	tournament, err := f.tournamentRepo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load tournament: %v", err)
	}
	return *tournament
}
