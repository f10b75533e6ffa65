package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gamer represents a player identity scoped to a game. The external
// GamerID is whatever identifier the game uses for the player; the pair
// (game, gamerId) is unique, enforced by an index on the collection.
type Gamer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Game      primitive.ObjectID `bson:"game" json:"game"`
	GamerID   string             `bson:"gamerId" json:"gamerId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// GamerSummary is the projection of a gamer embedded in prediction views.
type GamerSummary struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GamerID string             `bson:"gamerId" json:"gamerId"`
}
