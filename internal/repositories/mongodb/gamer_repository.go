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

// Compile-time check to ensure GamerRepository implements the interface
var _ repositories.GamerRepository = (*GamerRepository)(nil)

// GamerRepository handles MongoDB operations for Gamer
type GamerRepository struct {
	collection *mongo.Collection
}

// NewGamerRepository creates a new GamerRepository
func NewGamerRepository(db *mongo.Database) *GamerRepository {
	return &GamerRepository{
		collection: db.Collection("gamers"),
	}
}

// EnsureIndexes creates the unique (game, gamerId) index. FindOrCreate
// relies on it: without the index concurrent upserts could race into
// duplicate identities.
func (r *GamerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "game", Value: 1}, {Key: "gamerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindOrCreate resolves the gamer for (gameID, gamerID), creating it if
// absent. Implemented as a single upsert with $setOnInsert so concurrent
// calls for the same pair all resolve to the one record the index allows.
func (r *GamerRepository) FindOrCreate(ctx context.Context, gameID primitive.ObjectID, gamerID string) (*models.Gamer, error) {
	now := time.Now()
	filter := bson.M{"game": gameID, "gamerId": gamerID}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":       primitive.NewObjectID(),
		"game":      gameID,
		"gamerId":   gamerID,
		"createdAt": now,
		"updatedAt": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var gamer models.Gamer
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&gamer)
	if err != nil {
		// A concurrent upsert for the same pair can lose the index race;
		// the winning document is there to be read on retry.
		if mongo.IsDuplicateKeyError(err) {
			err = r.collection.FindOne(ctx, filter).Decode(&gamer)
		}
		if err != nil {
			return nil, err
		}
	}
	return &gamer, nil
}

// FindByID finds a gamer by ID
func (r *GamerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gamer, error) {
	var gamer models.Gamer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&gamer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrGamerNotFound
		}
		return nil, err
	}
	return &gamer, nil
}
