package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenService issues and validates session tokens.
type TokenService interface {
	Generate(userID, email, role string) (string, error)
	Validate(tokenStr string) (jwt.MapClaims, error)
	TTL() time.Duration
}

type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing HS256 tokens with the
// given secret.
func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &jwtTokenService{secret: []byte(secret), ttl: ttl}
}

// Generate signs a token carrying the user id, email and role.
func (s *jwtTokenService) Generate(userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(s.ttl).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a token string. Expired, malformed and
// tampered tokens all fail the same way.
func (s *jwtTokenService) Validate(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// TTL returns the configured token lifetime, used for the cookie max age.
func (s *jwtTokenService) TTL() time.Duration {
	return s.ttl
}
