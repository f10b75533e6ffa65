package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure TournamentRepository implements the interface
var _ repositories.TournamentRepository = (*TournamentRepository)(nil)

// TournamentRepository handles MongoDB operations for Tournament
type TournamentRepository struct {
	collection *mongo.Collection
}

// NewTournamentRepository creates a new TournamentRepository
func NewTournamentRepository(db *mongo.Database) *TournamentRepository {
	return &TournamentRepository{
		collection: db.Collection("tournaments"),
	}
}

// Create inserts a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = primitive.NewObjectID()
	tournament.CreatedAt = time.Now()
	tournament.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, tournament)
	return err
}

// FindByID finds a tournament by ID
func (r *TournamentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tournament)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTournamentNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

// FindByGame retrieves all tournaments owned by a game, newest first
func (r *TournamentRepository) FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Tournament, error) {
	var tournaments []*models.Tournament
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"game": gameID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tournaments); err != nil {
		return nil, err
	}
	if tournaments == nil {
		tournaments = []*models.Tournament{}
	}
	return tournaments, nil
}

// UpdateStatus sets the tournament's lifecycle status
func (r *TournamentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrTournamentNotFound
	}
	return nil
}

// IncrementPrizePool atomically adds delta to the tournament's prize pool.
// The increment happens at the storage layer, never as an application-side
// read-modify-write, so concurrent callers cannot lose updates.
func (r *TournamentRepository) IncrementPrizePool(ctx context.Context, id primitive.ObjectID, delta float64) error {
	return r.increment(ctx, id, "prizePool", delta)
}

// IncrementTotalPredictionAmount atomically adds delta to the tournament's
// running prediction total. Same contract as IncrementPrizePool.
func (r *TournamentRepository) IncrementTotalPredictionAmount(ctx context.Context, id primitive.ObjectID, delta float64) error {
	return r.increment(ctx, id, "totalPredictionAmount", delta)
}

func (r *TournamentRepository) increment(ctx context.Context, id primitive.ObjectID, field string, delta float64) error {
	if delta <= 0 {
		return errors.New("increment delta must be positive")
	}
	update := bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrTournamentNotFound
	}
	return nil
}
