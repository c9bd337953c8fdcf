package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the credential claims shared by the Verifier and Issuer.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens against the configured signing key.
type Verifier struct {
	key    []byte
	parser *jwt.Parser
}

// NewVerifier creates a Verifier from the auth configuration.
// When an issuer is configured, tokens must carry a matching iss claim.
func NewVerifier(cfg *Config) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{
		key:    []byte(cfg.SigningKey),
		parser: jwt.NewParser(opts...),
	}
}

// Verify parses and validates token. Every failure wraps ErrForbidden.
func (v *Verifier) Verify(token string) (*Identity, error) {
	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	if !parsed.Valid {
		return nil, ErrForbidden
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrForbidden)
	}

	return &Identity{
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
