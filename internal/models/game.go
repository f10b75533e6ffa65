package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameStatus represents the status of a registered game
type GameStatus string

const (
	GameStatusActive   GameStatus = "ACTIVE"
	GameStatusDisabled GameStatus = "DISABLED"
)

// Game represents an external game integrated with the platform.
// Games authenticate with their API key and enter gamers into tournaments.
type Game struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	APIKey    string             `bson:"apiKey" json:"apiKey,omitempty"`
	Status    GameStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
