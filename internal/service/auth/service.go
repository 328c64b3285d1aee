package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gestipay/paie-backend-go/internal/domain/auth"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !u.Actif {
		return auth.TokenResponse{}, auth.ErrAccountDisabled
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EntrepriseID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("User logged in", "user_id", u.ID, "role", u.Role)

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Role:        string(u.Role),
	}, nil
}
