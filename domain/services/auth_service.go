package services

import (
	"context"

	"cardapio-digital/domain/dto"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}
