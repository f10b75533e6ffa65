package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nexra-Labs/nexrahub-core/internal/config"
	"github.com/Nexra-Labs/nexrahub-core/internal/models"
	"github.com/Nexra-Labs/nexrahub-core/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles bettor registration and login
type AuthServiceImpl struct {
	bettorRepo repositories.BettorRepository
	cfg        *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(bettorRepo repositories.BettorRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		bettorRepo: bettorRepo,
		cfg:        cfg,
	}
}

// Register creates a bettor account with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterBettorRequest) (*models.Bettor, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	bettor := &models.Bettor{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.bettorRepo.Create(ctx, bettor); err != nil {
		return nil, err
	}

	slog.Info("bettor registered", "bettor", bettor.ID.Hex())
	bettor.Password = ""
	return bettor, nil
}

// Login verifies credentials and issues an HS256 bearer token with the
// bettor id as subject
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	bettor, err := s.bettorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrBettorNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(bettor.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   bettor.ID.Hex(),
		"email": bettor.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	bettor.Password = ""
	return &models.LoginResponse{Token: signed, Bettor: bettor}, nil
}

// FindBettorByID resolves a bettor, used by the bearer middleware
func (s *AuthServiceImpl) FindBettorByID(ctx context.Context, id primitive.ObjectID) (*models.Bettor, error) {
	bettor, err := s.bettorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bettor.Password = ""
	return bettor, nil
}
