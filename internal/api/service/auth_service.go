package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"qrgen/qr-api/internal/credentials"
)

var (
	// ErrInvalidCredentials is returned for an unknown username and for a
	// password mismatch alike, so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTokenExpired is returned when a token's expiry claim has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned for structurally invalid tokens and
	// signature mismatches.
	ErrTokenMalformed = errors.New("invalid authentication token")
)

// ScopeGenerate is the permission required to render QR codes.
const ScopeGenerate = "qr:generate"

// Claims is the JWT payload issued by the service.
type Claims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes"`
}

// HasScope reports whether the claims grant the given permission.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// AuthService issues and verifies bearer tokens against the configured
// credential set. Both paths are pure functions of their inputs and the wall
// clock; no state is kept between calls.
type AuthService interface {
	Issue(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, tokenString string) (*Claims, error)
	TTL() time.Duration
}

type authService struct {
	store     *credentials.Store
	secretKey []byte
	ttl       time.Duration
}

// NewAuthService creates an AuthService backed by an immutable credential
// store and an HS256 signing key.
func NewAuthService(store *credentials.Store, secretKey []byte, ttl time.Duration) AuthService {
	return &authService{
		store:     store,
		secretKey: secretKey,
		ttl:       ttl,
	}
}

// Issue validates the credentials and returns a signed token with the
// subject claim set to the username.
func (s *authService) Issue(ctx context.Context, username, password string) (string, error) {
	cred, err := s.store.Lookup(username)
	if err != nil {
		// Burn a comparison anyway so unknown usernames cost the same as a
		// wrong password.
		credentials.Credential{}.Matches(password)
		return "", ErrInvalidCredentials
	}

	if !cred.Matches(password) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Scopes: []string{ScopeGenerate},
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify parses a token, checks its signature and temporal claims, and
// returns the claims on success.
func (s *authService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *authService) TTL() time.Duration {
	return s.ttl
}
