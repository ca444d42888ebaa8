package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "research-tracker/internal/db"
	"research-tracker/internal/domain"
)

func setupUserRepo(t *testing.T) *UserRepo {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	return NewUserRepo(writeDB, readDB)
}

func newTestUser(username string, role domain.Role) *domain.User {
	return &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotareal",
		FullName:     "Test " + username,
		Role:         role,
	}
}

func TestUserRepo_CRUD(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, newTestUser("alice", domain.RolePI))
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	found, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)
	assert.Equal(t, domain.RolePI, found.Role)

	found, err = repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	users, total, err := repo.List(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)

	err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, u.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUserRepo_DuplicateUsername(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newTestUser("bob", domain.RoleMember))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestUser("bob", domain.RoleViewer))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUserRepo_ListByRole(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	for _, u := range []*domain.User{
		newTestUser("carol", domain.RolePI),
		newTestUser("dave", domain.RoleMember),
		newTestUser("erin", domain.RoleMember),
	} {
		_, err := repo.Create(ctx, u)
		require.NoError(t, err)
	}

	members, total, err := repo.ListByRole(ctx, domain.RoleMember, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, members, 2)
	assert.Equal(t, "dave", members[0].Username)
	assert.Equal(t, "erin", members[1].Username)
}

func TestUserRepo_DeleteMissing(t *testing.T) {
	repo := setupUserRepo(t)

	err := repo.Delete(context.Background(), "no-such-id")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUserRepo_WritePoolVisibleToReadPool(t *testing.T) {
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	repo := NewUserRepo(writeDB, readDB)
	ctx := context.Background()

	u, err := repo.Create(ctx, newTestUser("alice", domain.RolePI))
	require.NoError(t, err)

	// Lookups run on the read pool and must see the committed insert.
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByUsername(ctx, "alice")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
