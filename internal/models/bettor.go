package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bettor represents a platform user who places predictions. Distinct from
// Gamer: a bettor authenticates with the platform directly, a gamer is an
// identity owned by a game.
type Bettor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterBettorRequest is the payload for bettor registration
type RegisterBettorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for bettor login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token  string  `json:"token"`
	Bettor *Bettor `json:"bettor"`
}
