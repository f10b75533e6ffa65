package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentStatus represents the lifecycle status of a tournament
type TournamentStatus string

const (
	TournamentStatusDraft     TournamentStatus = "DRAFT"
	TournamentStatusPublished TournamentStatus = "PUBLISHED"
	TournamentStatusClosed    TournamentStatus = "CLOSED"
	TournamentStatusCompleted TournamentStatus = "COMPLETED"
)

// Tournament represents a tournament hosted by a game. PrizePool and
// TotalPredictionAmount are running totals mutated only through atomic
// increments: PrizePool equals the sum of entry fees over all accepted
// entries, TotalPredictionAmount the sum of amounts over all predictions
// placed on the tournament's options.
type Tournament struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Game                  primitive.ObjectID `bson:"game" json:"game"`
	Name                  string             `bson:"name" json:"name"`
	Description           string             `bson:"description,omitempty" json:"description,omitempty"`
	Status                TournamentStatus   `bson:"status" json:"status"`
	StartTime             time.Time          `bson:"startTime" json:"startTime"`
	EntryFee              float64            `bson:"entryFee" json:"entryFee"`
	PrizePool             float64            `bson:"prizePool" json:"prizePool"`
	TotalPredictionAmount float64            `bson:"totalPredictionAmount" json:"totalPredictionAmount"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TournamentSummary is the projection of a tournament embedded in entry and
// prediction views.
type TournamentSummary struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                  string             `bson:"name" json:"name"`
	Description           string             `bson:"description,omitempty" json:"description,omitempty"`
	TotalPredictionAmount float64            `bson:"totalPredictionAmount" json:"totalPredictionAmount"`
}

// CreateTournamentRequest is the payload for creating a tournament
type CreateTournamentRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EntryFee    float64   `json:"entryFee" binding:"required,gt=0"`
}
