package research

import (
	"context"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	internaldb "research-tracker/internal/db"
	"research-tracker/internal/db/repository"
	"research-tracker/internal/domain"
	"research-tracker/internal/service/security"
	"research-tracker/internal/storage"
)

type fixture struct {
	projects   *ProjectService
	milestones *MilestoneService
	documents  *DocumentService
	userSvc    *UserService
	membership *security.MembershipService

	users domain.UserRepository
	blobs storage.BlobStore
}

func setup(t *testing.T) *fixture {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := repository.NewUserRepo(writeDB, readDB)
	projects := repository.NewProjectRepo(writeDB, readDB)
	members := repository.NewMembershipRepo(writeDB, readDB)
	milestones := repository.NewMilestoneRepo(writeDB, readDB)
	docs := repository.NewDocumentRepo(writeDB, readDB)

	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	authz := security.NewAuthorizationService(users, projects, members)
	return &fixture{
		projects:   NewProjectService(authz, projects, users, docs, blobs, logger),
		milestones: NewMilestoneService(authz, milestones, projects, users),
		documents:  NewDocumentService(authz, docs, projects, users, blobs, logger),
		userSvc:    NewUserService(authz, users),
		membership: security.NewMembershipService(authz, users, projects, members),
		users:      users,
		blobs:      blobs,
	}
}

func (f *fixture) createUser(t *testing.T, username string, role domain.Role) domain.Principal {
	t.Helper()
	_, err := f.users.Create(context.Background(), &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotareal",
		FullName:     "Test " + username,
		Role:         role,
	})
	require.NoError(t, err)
	return domain.Principal{Username: username, Role: role}
}

func (f *fixture) createProject(t *testing.T, pi domain.Principal, title string) *domain.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), pi, &domain.CreateProjectRequest{
		Title: title,
	})
	require.NoError(t, err)
	return p
}
