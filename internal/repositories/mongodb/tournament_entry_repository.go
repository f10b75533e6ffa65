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

// Compile-time check to ensure TournamentEntryRepository implements the interface
var _ repositories.TournamentEntryRepository = (*TournamentEntryRepository)(nil)

// TournamentEntryRepository handles MongoDB operations for TournamentEntry.
// Entries are append-only: created once by the entry workflow, never
// updated or deleted.
type TournamentEntryRepository struct {
	collection *mongo.Collection
}

// NewTournamentEntryRepository creates a new TournamentEntryRepository
func NewTournamentEntryRepository(db *mongo.Database) *TournamentEntryRepository {
	return &TournamentEntryRepository{
		collection: db.Collection("tournament_entries"),
	}
}

// EnsureIndexes creates the unique (tournament, gamer) index backing the
// one-entry-per-gamer invariant under concurrent requests.
func (r *TournamentEntryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tournament", Value: 1}, {Key: "gamer", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new entry. A duplicate (tournament, gamer) pair is
// reported as models.ErrDuplicateEntry.
func (r *TournamentEntryRepository) Create(ctx context.Context, entry *models.TournamentEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateEntry
	}
	return err
}

// FindByTournamentAndGamer finds the entry for a (tournament, gamer) pair
func (r *TournamentEntryRepository) FindByTournamentAndGamer(ctx context.Context, tournamentID, gamerID primitive.ObjectID) (*models.TournamentEntry, error) {
	var entry models.TournamentEntry
	filter := bson.M{"tournament": tournamentID, "gamer": gamerID}
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByTournament retrieves all entries for a tournament, oldest first
func (r *TournamentEntryRepository) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.TournamentEntry, error) {
	var entries []*models.TournamentEntry
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tournament": tournamentID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.TournamentEntry{}
	}
	return entries, nil
}
