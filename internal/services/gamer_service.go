package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure GamerServiceImpl implements GamerService
var _ GamerService = (*GamerServiceImpl)(nil)

// GamerServiceImpl resolves game-scoped gamer identities. Uniqueness per
// (game, gamerId) is the store's responsibility, not this layer's: the
// repository upsert plus its unique index guarantee at most one record per
// pair even under concurrent registration.
type GamerServiceImpl struct {
	gamerRepo repositories.GamerRepository
}

// NewGamerService creates a new GamerServiceImpl
func NewGamerService(gamerRepo repositories.GamerRepository) *GamerServiceImpl {
	return &GamerServiceImpl{gamerRepo: gamerRepo}
}

// FindOrRegister resolves the gamer for (game, externalGamerID), creating
// it if absent
func (s *GamerServiceImpl) FindOrRegister(ctx context.Context, gameID primitive.ObjectID, externalGamerID string) (*models.Gamer, error) {
	externalGamerID = strings.TrimSpace(externalGamerID)
	if externalGamerID == "" {
		return nil, errors.New("gamer id must not be empty")
	}
	return s.gamerRepo.FindOrCreate(ctx, gameID, externalGamerID)
}

// FindByID resolves a gamer by id
func (s *GamerServiceImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Gamer, error) {
	return s.gamerRepo.FindByID(ctx, id)
}
