package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultOdds is assigned to a prediction option at creation; odds are
// adjusted afterwards by tournament management.
const DefaultOdds = 2.0

// PredictionOption is the bettable unit created 1:1 with a tournament
// entry. TotalPredictionAmount equals the sum of amounts over its
// predictions and is mutated only through atomic increments.
type PredictionOption struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Tournament            primitive.ObjectID `bson:"tournament" json:"tournament"`
	Gamer                 primitive.ObjectID `bson:"gamer" json:"gamer"`
	Odds                  float64            `bson:"odds" json:"odds"`
	TotalPredictionAmount float64            `bson:"totalPredictionAmount" json:"totalPredictionAmount"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OptionWithTournament is the typed join view used by the prediction
// workflow: the option together with its owning tournament, resolved by a
// $lookup at the storage layer.
type OptionWithTournament struct {
	Option     PredictionOption `bson:",inline"`
	Tournament Tournament       `bson:"tournamentDoc"`
}

// OptionSummary is the projection of an option embedded in prediction views.
type OptionSummary struct {
	ID                    primitive.ObjectID `json:"id,omitempty"`
	Odds                  float64            `json:"odds"`
	TotalPredictionAmount float64            `json:"totalPredictionAmount"`
	Gamer                 GamerSummary       `json:"gamer"`
	Tournament            TournamentSummary  `json:"tournament"`
}
