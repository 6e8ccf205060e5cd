package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cardapio-digital/domain/dto"
	"cardapio-digital/domain/services"
	"cardapio-digital/pkg/utils"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	svc := NewAuthService("admin", string(hash), "test-secret", time.Hour)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "s3nha"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	admin, err := utils.ValidateAdminToken(resp.Token, "test-secret")
	if err != nil || admin.Username != "admin" || admin.Role != utils.AdminRole {
		t.Fatalf("token claims = %+v, %v", admin, err)
	}
	if time.Until(resp.ExpiresAt) > time.Hour || time.Until(resp.ExpiresAt) < 59*time.Minute {
		t.Fatalf("expires at %s", resp.ExpiresAt)
	}

	tests := []struct {
		name string
		req  *dto.LoginRequest
	}{
		{"wrong password", &dto.LoginRequest{Username: "admin", Password: "nope"}},
		{"wrong user", &dto.LoginRequest{Username: "root", Password: "s3nha"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tt.req); !errors.Is(err, services.ErrInvalidCredentials) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestLoginWithoutConfiguredHash(t *testing.T) {
	svc := NewAuthService("admin", "", "test-secret", time.Hour)
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: ""}); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("err = %v", err)
	}
}
