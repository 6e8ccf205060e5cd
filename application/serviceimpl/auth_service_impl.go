package serviceimpl

import (
	"context"
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/logger"
	"cardapio-digital/pkg/utils"
)

type AuthServiceImpl struct {
	username     string
	passwordHash string
	jwtSecret    string
	tokenTTL     time.Duration
}

func NewAuthService(username, passwordHash, jwtSecret string, tokenTTL time.Duration) services.AuthService {
	return &AuthServiceImpl{
		username:     username,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.passwordHash == "" {
		logger.WarnContext(ctx, "Admin login attempted but ADMIN_PASSWORD_HASH is not set")
		return nil, services.ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		logger.WarnContext(ctx, "Admin login failed", "username", req.Username)
		return nil, services.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateAdminToken(s.username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate admin token", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Admin logged in", "username", s.username)
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
