// Package auth implements session credential issuance and verification:
// registration and login against the credential store, and HS256-signed,
// time-bounded session tokens carrying identity and role.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"research-tracker/internal/domain"
)

// DefaultSessionTTL bounds a session credential's lifetime.
const DefaultSessionTTL = 24 * time.Hour

// sessionClaims is the JWT claim set for a session credential.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed session credentials. The signing key is injected
// at construction and lives for the life of the process; rotation requires
// a restart.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer creates an issuer with the given signing key and TTL.
// A zero ttl falls back to DefaultSessionTTL.
func NewTokenIssuer(key []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenIssuer{key: key, ttl: ttl, now: time.Now}
}

// Mint signs a session credential for the given identity and role.
// Expiry is always issued-at + TTL.
func (i *TokenIssuer) Mint(username string, role domain.Role) (string, error) {
	now := i.now()
	claims := sessionClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.key)
}

// TokenVerifier validates session credentials against the signing key.
type TokenVerifier struct {
	key []byte
	now func() time.Time
}

// NewTokenVerifier creates a verifier for tokens signed with key.
func NewTokenVerifier(key []byte) *TokenVerifier {
	return &TokenVerifier{key: key, now: time.Now}
}

// Verify checks the token's signature, structure, and expiry, and returns the
// embedded principal. The role claim is trusted as of issuance time and is
// not re-read from the user store, so a role change takes effect only at the
// next login.
func (v *TokenVerifier) Verify(token string) (domain.Principal, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now))

	switch {
	case err == nil && parsed.Valid:
		// fall through to claim checks
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.Principal{}, domain.ErrAuth(domain.AuthExpired, "session credential expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.Principal{}, domain.ErrAuth(domain.AuthBadSignature, "session credential signature mismatch")
	default:
		return domain.Principal{}, domain.ErrAuth(domain.AuthMalformed, "session credential is not decodable")
	}

	if claims.Subject == "" {
		return domain.Principal{}, domain.ErrAuth(domain.AuthMalformed, "session credential has no subject")
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Principal{}, domain.ErrAuth(domain.AuthMalformed, "session credential has no usable role claim")
	}

	return domain.Principal{Username: claims.Subject, Role: role}, nil
}
