package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"timerdash/internal/clock"
	apperrors "timerdash/internal/errors"
)

// TokenService issues and verifies the bearer tokens that guard the control
// API.
type TokenService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	clock     clock.Clock
}

func NewTokenService(jwtSecret string, tokenTTL time.Duration, c clock.Clock) *TokenService {
	return &TokenService{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		clock:     c,
	}
}

func (s *TokenService) Issue(subject string) (string, *apperrors.APIError) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", apperrors.BadRequest("invalid_subject", "subject is required")
	}

	now := s.clock.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}

func (s *TokenService) Parse(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.Unauthorized("invalid token")
	}

	if claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid token subject")
	}

	return claims.Subject, nil
}
