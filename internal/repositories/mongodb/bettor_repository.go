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

// Compile-time check to ensure BettorRepository implements the interface
var _ repositories.BettorRepository = (*BettorRepository)(nil)

// BettorRepository handles MongoDB operations for Bettor
type BettorRepository struct {
	collection *mongo.Collection
}

// NewBettorRepository creates a new BettorRepository
func NewBettorRepository(db *mongo.Database) *BettorRepository {
	return &BettorRepository{
		collection: db.Collection("bettors"),
	}
}

// EnsureIndexes creates the unique email index
func (r *BettorRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new bettor
func (r *BettorRepository) Create(ctx context.Context, bettor *models.Bettor) error {
	bettor.ID = primitive.NewObjectID()
	bettor.CreatedAt = time.Now()
	bettor.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, bettor)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailTaken
	}
	return err
}

// FindByEmail finds a bettor by email
func (r *BettorRepository) FindByEmail(ctx context.Context, email string) (*models.Bettor, error) {
	var bettor models.Bettor
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&bettor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrBettorNotFound
		}
		return nil, err
	}
	return &bettor, nil
}

// FindByID finds a bettor by ID
func (r *BettorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Bettor, error) {
	var bettor models.Bettor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bettor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrBettorNotFound
		}
		return nil, err
	}
	return &bettor, nil
}
