package service

import (
	"context"
	"database/sql"
	"errors"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/repository"
	"rentmatch-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("Invalid email or password")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.DeletedOn != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		logger.Warn("Failed login attempt", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, []string{string(user.Role)})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
