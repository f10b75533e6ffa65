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

// Compile-time check to ensure PredictionOptionRepository implements the interface
var _ repositories.PredictionOptionRepository = (*PredictionOptionRepository)(nil)

// PredictionOptionRepository handles MongoDB operations for PredictionOption
type PredictionOptionRepository struct {
	collection *mongo.Collection
}

// NewPredictionOptionRepository creates a new PredictionOptionRepository
func NewPredictionOptionRepository(db *mongo.Database) *PredictionOptionRepository {
	return &PredictionOptionRepository{
		collection: db.Collection("prediction_options"),
	}
}

// EnsureIndexes creates the unique (tournament, gamer) index; one option
// exists per tournament entry.
func (r *PredictionOptionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tournament", Value: 1}, {Key: "gamer", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new option with default odds and a zero total. A second
// option for the same (tournament, gamer) pair is a defect upstream and is
// reported as models.ErrDuplicateOption rather than absorbed.
func (r *PredictionOptionRepository) Create(ctx context.Context, option *models.PredictionOption) error {
	option.ID = primitive.NewObjectID()
	if option.Odds == 0 {
		option.Odds = models.DefaultOdds
	}
	option.TotalPredictionAmount = 0
	option.CreatedAt = time.Now()
	option.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, option)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateOption
	}
	return err
}

// FindByID finds an option by ID
func (r *PredictionOptionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PredictionOption, error) {
	var option models.PredictionOption
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&option)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrOptionNotFound
		}
		return nil, err
	}
	return &option, nil
}

// FindByIDWithTournament returns the option joined with its owning
// tournament as a typed view. The join is a $lookup resolved at the
// storage layer; callers get concrete fields, not a dynamically populated
// document.
func (r *PredictionOptionRepository) FindByIDWithTournament(ctx context.Context, id primitive.ObjectID) (*models.OptionWithTournament, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "tournaments",
			"localField":   "tournament",
			"foreignField": "_id",
			"as":           "tournamentDoc",
		}}},
		{{Key: "$unwind", Value: "$tournamentDoc"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []models.OptionWithTournament
	if err = cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, models.ErrOptionNotFound
	}
	return &views[0], nil
}

// IncrementTotalAmount atomically adds delta to the option's wagered total
func (r *PredictionOptionRepository) IncrementTotalAmount(ctx context.Context, id primitive.ObjectID, delta float64) error {
	if delta <= 0 {
		return errors.New("increment delta must be positive")
	}
	update := bson.M{
		"$inc": bson.M{"totalPredictionAmount": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrOptionNotFound
	}
	return nil
}

// UpdateOdds sets the option's odds. Already-placed predictions keep their
// oddsAtPlacement snapshot.
func (r *PredictionOptionRepository) UpdateOdds(ctx context.Context, id primitive.ObjectID, odds float64) error {
	if odds <= 1 {
		return errors.New("odds must be greater than 1")
	}
	update := bson.M{"$set": bson.M{"odds": odds, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrOptionNotFound
	}
	return nil
}
