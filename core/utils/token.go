package utils

import (
	"fmt"
	"time"

	"venue-api/core/config"
	"venue-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenData is the decoded identity carried by a bearer token.
type TokenData struct {
	UserID       uuid.UUID
	Capabilities []string
}

type claims struct {
	Capabilities []string `json:"caps"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uuid.UUID, capabilities []string, ttl time.Duration) (string, error) {
	cfg, err := config.GetSafe()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Capabilities: capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString([]byte(cfg.JWT.Secret))
}

func ValidateAndParseToken(tokenString string) (*TokenData, error) {
	cfg, err := config.GetSafe()
	if err != nil {
		return nil, err
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}
	if !token.Valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid subject", err)
	}

	return &TokenData{UserID: userID, Capabilities: c.Capabilities}, nil
}

// HasCapability reports whether the token carries the named capability.
func (t *TokenData) HasCapability(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}
