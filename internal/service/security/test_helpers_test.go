package security

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	internaldb "research-tracker/internal/db"
	"research-tracker/internal/db/repository"
	"research-tracker/internal/domain"
)

type securityFixture struct {
	authz      *AuthorizationService
	membership *MembershipService
	users      domain.UserRepository
	projects   domain.ProjectRepository
	members    domain.MembershipRepository
}

func setupSecurity(t *testing.T) *securityFixture {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestSQLite(t)

	users := repository.NewUserRepo(writeDB, readDB)
	projects := repository.NewProjectRepo(writeDB, readDB)
	members := repository.NewMembershipRepo(writeDB, readDB)

	authz := NewAuthorizationService(users, projects, members)
	return &securityFixture{
		authz:      authz,
		membership: NewMembershipService(authz, users, projects, members),
		users:      users,
		projects:   projects,
		members:    members,
	}
}

func (f *securityFixture) createUser(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotareal",
		FullName:     "Test " + username,
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func (f *securityFixture) createProject(t *testing.T, title string, pi *domain.User) *domain.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), &domain.Project{
		ID:     domain.NewID(),
		Title:  title,
		Status: domain.StatusActive,
		PIID:   pi.ID,
	})
	require.NoError(t, err)
	return p
}

func principalOf(u *domain.User) domain.Principal {
	return domain.Principal{Username: u.Username, Role: u.Role}
}
