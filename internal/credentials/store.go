package credentials

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound is returned when no credential exists for a username.
	ErrNotFound = errors.New("credential not found")
	// ErrEmptyStore is returned when the configured user set is empty.
	ErrEmptyStore = errors.New("credential store must contain at least one user")
)

// Credential is a single username/secret pair. The secret is either a
// plaintext password or a bcrypt hash.
type Credential struct {
	Username string
	Secret   string
}

// Matches compares a candidate password against the stored secret. Plaintext
// secrets are compared in constant time to avoid timing leaks.
func (c Credential) Matches(password string) bool {
	if isBcryptHash(c.Secret) {
		return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.Secret), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Store is an immutable username -> credential map loaded once at startup.
// It is safe for unsynchronized concurrent reads.
type Store struct {
	creds map[string]Credential
}

// NewStore builds a store from an in-memory user map.
func NewStore(users map[string]string) (*Store, error) {
	if len(users) == 0 {
		return nil, ErrEmptyStore
	}
	creds := make(map[string]Credential, len(users))
	for username, secret := range users {
		if username == "" {
			return nil, errors.New("credential store: empty username")
		}
		creds[username] = Credential{Username: username, Secret: secret}
	}
	return &Store{creds: creds}, nil
}

// NewStoreFromJSON builds a store from a JSON object mapping username to
// password, the AUTH_USERS wire format. A malformed document is a startup
// error, not a recoverable one.
func NewStoreFromJSON(raw string) (*Store, error) {
	var users map[string]string
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("failed to parse AUTH_USERS: %w", err)
	}
	return NewStore(users)
}

// Lookup returns the credential for a username, or ErrNotFound.
func (s *Store) Lookup(username string) (Credential, error) {
	cred, ok := s.creds[username]
	if !ok {
		return Credential{}, ErrNotFound
	}
	return cred, nil
}

// Len returns the number of configured users.
func (s *Store) Len() int {
	return len(s.creds)
}
