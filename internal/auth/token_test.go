package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-tracker/internal/domain"
)

var testKey = []byte("test-signing-key-0123456789abcdef")

func requireAuthError(t *testing.T, err error, reason domain.AuthReason) {
	t.Helper()
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, reason, authErr.Reason)
}

func TestToken_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testKey, time.Hour)
	verifier := NewTokenVerifier(testKey)

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RolePI, domain.RoleMember, domain.RoleViewer} {
		token, err := issuer.Mint("alice", role)
		require.NoError(t, err)

		principal, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", principal.Username)
		assert.Equal(t, role, principal.Role)
	}
}

func TestToken_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(testKey, time.Hour)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Mint("alice", domain.RolePI)
	require.NoError(t, err)

	verifier := NewTokenVerifier(testKey)

	verifier.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = verifier.Verify(token)
	require.NoError(t, err)

	// The exact expiry instant is already rejected.
	verifier.now = func() time.Time { return issued.Add(time.Hour) }
	_, err = verifier.Verify(token)
	requireAuthError(t, err, domain.AuthExpired)

	verifier.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = verifier.Verify(token)
	requireAuthError(t, err, domain.AuthExpired)
}

func TestToken_WrongKey(t *testing.T) {
	issuer := NewTokenIssuer([]byte("another-key-entirely-000000000000"), time.Hour)
	token, err := issuer.Mint("alice", domain.RolePI)
	require.NoError(t, err)

	_, err = NewTokenVerifier(testKey).Verify(token)
	requireAuthError(t, err, domain.AuthBadSignature)
}

func TestToken_TamperedPayload(t *testing.T) {
	issuer := NewTokenIssuer(testKey, time.Hour)
	token, err := issuer.Mint("alice", domain.RoleViewer)
	require.NoError(t, err)

	// Swap out the payload segment; the signature no longer matches.
	forged, err := issuer.Mint("alice", domain.RoleAdmin)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = NewTokenVerifier(testKey).Verify(tampered)
	requireAuthError(t, err, domain.AuthBadSignature)
}

func TestToken_Malformed(t *testing.T) {
	verifier := NewTokenVerifier(testKey)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := verifier.Verify(token)
		requireAuthError(t, err, domain.AuthMalformed)
	}
}
