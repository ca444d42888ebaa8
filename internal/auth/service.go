package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"research-tracker/internal/domain"
)

// dummyHash is compared against when the username is unknown, so login takes
// the same time whether the identity exists or not.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Service is the identity issuer: it registers users against the credential
// store and exchanges a valid username/password for a session credential.
type Service struct {
	users  domain.UserRepository
	issuer *TokenIssuer
}

// NewService creates an identity service backed by the given user repository
// and token issuer.
func NewService(users domain.UserRepository, issuer *TokenIssuer) *Service {
	return &Service{users: users, issuer: issuer}
}

// Register creates a new user with the default MEMBER role. Fails with a
// ConflictError when the username is already taken.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           domain.NewID(),
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         domain.RoleMember,
	}
	return s.users.Create(ctx, u)
}

// Login verifies the presented password against the stored hash and mints a
// session credential carrying the user's current role. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return "", domain.ErrAuth(domain.AuthInvalidCredentials, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", domain.ErrAuth(domain.AuthInvalidCredentials, "invalid credentials")
	}

	return s.issuer.Mint(u.Username, u.Role)
}
