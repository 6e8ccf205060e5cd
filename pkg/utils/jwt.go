package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingToken = errors.New("missing token")
)

const AdminRole = "admin"

type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AdminContext is stored in fiber locals under "admin" by the Protected middleware
type AdminContext struct {
	Username  string
	Role      string
	ExpiresAt time.Time
}

// GenerateAdminToken signs an HS256 token for the back-office operator
func GenerateAdminToken(username, jwtSecret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := JWTClaims{
		Username: username,
		Role:     AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func ValidateAdminToken(tokenString, jwtSecret string) (*AdminContext, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.Role != AdminRole {
		return nil, ErrInvalidToken
	}

	adminCtx := &AdminContext{
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		adminCtx.ExpiresAt = claims.ExpiresAt.Time
	}
	return adminCtx, nil
}

func ExtractTokenFromHeader(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

func GetAdminFromContext(c *fiber.Ctx) (*AdminContext, error) {
	admin, ok := c.Locals("admin").(*AdminContext)
	if !ok || admin == nil {
		return nil, errors.New("admin not found in context")
	}
	return admin, nil
}
