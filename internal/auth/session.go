package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lojinha/storefront/internal/config"
	"github.com/lojinha/storefront/internal/domain"
)

const issuer = "storefront-bff"

var (
	ErrInvalidToken  = errors.New("invalid session token")
	ErrExpiredToken  = errors.New("session has expired")
	ErrInvalidClaims = errors.New("invalid session claims")
)

// SessionClaims is the signed session envelope. The access token inside
// is the bearer credential the identity provider issued at login; this
// service only wraps it, it never mints backend credentials itself.
type SessionClaims struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	jwt.RegisteredClaims
}

// Sessions issues and validates session tokens
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

// NewSessions creates a session manager from config
func NewSessions(cfg config.SessionConfig) *Sessions {
	return &Sessions{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
	}
}

// Issue wraps a backend access token and account identity in a signed
// session token.
func (s *Sessions) Issue(account *domain.Account, accessToken string) (string, *SessionClaims, error) {
	now := time.Now().UTC()

	claims := &SessionClaims{
		UserID:      account.ID,
		Username:    account.Username,
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("user:%d", account.ID),
			ID:        uuid.New().String(), // Session ID, also the cart session key
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

// Validate parses and verifies a session token and returns its claims
func (s *Sessions) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Issuer != issuer || claims.AccessToken == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL returns the configured session lifetime
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}
