package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prediction is a bettor's wager on a prediction option. OddsAtPlacement
// is the option's odds captured at the moment the prediction was placed;
// later odds changes never affect it. Predictions are append-only.
type Prediction struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Bettor           primitive.ObjectID `bson:"bettor" json:"bettor"`
	PredictionOption primitive.ObjectID `bson:"predictionOption" json:"predictionOption"`
	Amount           float64            `bson:"amount" json:"amount"`
	OddsAtPlacement  float64            `bson:"oddsAtPlacement" json:"oddsAtPlacement"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// PredictionDetail is the typed view returned after placing a prediction:
// the created record with its option, tournament summary and gamer identity
// populated.
type PredictionDetail struct {
	Prediction *Prediction   `json:"prediction"`
	Option     OptionSummary `json:"option"`
}

// PlacePredictionRequest is the payload for placing a prediction
type PlacePredictionRequest struct {
	PredictionOption string  `json:"predictionOption" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
}
