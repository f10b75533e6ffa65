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

// Compile-time check to ensure PredictionRepository implements the interface
var _ repositories.PredictionRepository = (*PredictionRepository)(nil)

// PredictionRepository handles MongoDB operations for Prediction.
// Predictions are append-only; no update or delete operations exist.
type PredictionRepository struct {
	collection *mongo.Collection
}

// NewPredictionRepository creates a new PredictionRepository
func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{
		collection: db.Collection("predictions"),
	}
}

// EnsureIndexes creates the bettor lookup index
func (r *PredictionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bettor", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Create inserts a new prediction record
func (r *PredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	prediction.ID = primitive.NewObjectID()
	prediction.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, prediction)
	return err
}

// FindByID finds a prediction by ID
func (r *PredictionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prediction, error) {
	var prediction models.Prediction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prediction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrPredictionNotFound
		}
		return nil, err
	}
	return &prediction, nil
}

// FindByBettor retrieves all predictions placed by a bettor, newest first
func (r *PredictionRepository) FindByBettor(ctx context.Context, bettorID primitive.ObjectID) ([]*models.Prediction, error) {
	var predictions []*models.Prediction
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"bettor": bettorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &predictions); err != nil {
		return nil, err
	}
	if predictions == nil {
		predictions = []*models.Prediction{}
	}
	return predictions, nil
}
