package service

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/model"
	"DonaTalkAPI/internal/repository"
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService verifies identity tokens issued by the account service.
type AuthService struct {
	users UserRepository
	cfg   *config.AppConfig
}

func NewAuthService(users UserRepository, cfg *config.AppConfig) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
	}
}

// VerifyToken checks the token signature and returns the user id it carries.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	userID, err := helper.ParseJWT(s.cfg.JWTSecret, token)
	if err != nil {
		return "", helper.NewUnauthorizedError("not authorized, token failed")
	}

	if !primitive.IsValidObjectID(userID) {
		return "", helper.NewUnauthorizedError("not authorized, token failed")
	}

	return userID, nil
}

// VerifyUser resolves a token to the public profile of an existing user.
func (s *AuthService) VerifyUser(ctx context.Context, token string) (*model.UserDTO, error) {
	userID, err := s.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	id, _ := primitive.ObjectIDFromHex(userID)
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, helper.NewUnauthorizedError("not authorized, user not found")
		}
		slog.Error("Failed to load user for token", "error", err, "userID", userID)
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	return model.ToUserDTO(user), nil
}
