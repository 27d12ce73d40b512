package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrgen/qr-api/internal/credentials"
)

func newTestAuthService(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()

	store, err := credentials.NewStore(map[string]string{
		"admin": "secure_password_123",
	})
	require.NoError(t, err)

	return NewAuthService(store, []byte("test-signing-key"), ttl)
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Issue(ctx, "admin", "secure_password_123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, claims.HasScope(ScopeGenerate))
	assert.NotEmpty(t, claims.ID)
}

func TestIssue_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown username", username: "nobody", password: "secure_password_123"},
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "empty password", username: "admin", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Issue(ctx, tt.username, tt.password)
			// Identical error for both failure modes so usernames cannot be
			// enumerated.
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, -1*time.Second)
	ctx := context.Background()

	token, err := svc.Issue(ctx, "admin", "secure_password_123")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Issue(ctx, "admin", "secure_password_123")
	require.NoError(t, err)

	store, err := credentials.NewStore(map[string]string{"admin": "secure_password_123"})
	require.NoError(t, err)
	other := NewAuthService(store, []byte("a-different-key"), time.Hour)

	_, err = other.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Issue(ctx, "admin", "secure_password_123")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// Flip the payload; the signature no longer matches.
	parts[1] = "eyJzdWIiOiJyb290In0"
	tampered := strings.Join(parts, ".")

	_, err = svc.Verify(ctx, tampered)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := svc.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}
