// Package jwt issues and validates the signed decision tokens attached to
// application accept/decline buttons.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Service signs and validates decision tokens.
type Service interface {
	GenerateDecisionToken(applicationID, questID, applicantID string) (string, error)
	ValidateDecisionToken(tokenString string) (*DecisionClaims, error)
}

type service struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewService creates a token service. defaultTTL bounds how long a pending
// decision stays actionable; zero means tokens never expire.
func NewService(secret string, defaultTTL time.Duration) Service {
	return &service{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}
}

func (s *service) GenerateDecisionToken(applicationID, questID, applicantID string) (string, error) {
	now := time.Now()
	claims := &DecisionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  applicantID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		ApplicationID: applicationID,
		QuestID:       questID,
		ApplicantID:   applicantID,
	}
	if s.defaultTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.defaultTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign decision token: %w", err)
	}
	return signed, nil
}

func (s *service) ValidateDecisionToken(tokenString string) (*DecisionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DecisionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*DecisionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ApplicationID == "" || claims.QuestID == "" || claims.ApplicantID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
