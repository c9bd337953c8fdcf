package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType is the scheme clients send in the Authorization header.
const TokenType = "Bearer"

// Token is a signed credential ready to hand to a client.
type Token struct {
	Value     string
	Type      string
	ExpiresIn time.Duration
	ExpiresAt time.Time
}

// Issuer signs HS256 credentials.
type Issuer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer from the auth configuration.
func NewIssuer(cfg *Config) *Issuer {
	return &Issuer{
		key:    []byte(cfg.SigningKey),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTLDuration(),
		now:    time.Now,
	}
}

// Issue signs a credential for userID that expires after the configured TTL.
func (i *Issuer) Issue(userID string) (*Token, error) {
	now := i.now()
	expires := now.Add(i.ttl)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Token{
		Value:     signed,
		Type:      TokenType,
		ExpiresIn: i.ttl,
		ExpiresAt: expires,
	}, nil
}
