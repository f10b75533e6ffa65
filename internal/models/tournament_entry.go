package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentEntry links a gamer to a tournament. EntryFee is snapshotted
// from the tournament at entry time and never changes afterwards, even if
// the tournament's fee is later edited. Entries are append-only; the pair
// (tournament, gamer) is unique.
type TournamentEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Tournament primitive.ObjectID `bson:"tournament" json:"tournament"`
	Gamer      primitive.ObjectID `bson:"gamer" json:"gamer"`
	EntryFee   float64            `bson:"entryFee" json:"entryFee"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// EntryDetail is the typed view returned after a successful entry: the
// created entry with its tournament summary populated.
type EntryDetail struct {
	Entry      *TournamentEntry  `json:"entry"`
	Tournament TournamentSummary `json:"tournament"`
}

// CreateEntryRequest is the payload a game sends to enter a gamer into a
// tournament. Gamer is the game's external identifier for the player.
type CreateEntryRequest struct {
	Gamer string `json:"gamer" binding:"required"`
}
