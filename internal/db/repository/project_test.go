package repository

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "research-tracker/internal/db"
	"research-tracker/internal/domain"
)

func setupProjectRepos(t *testing.T) (*ProjectRepo, *UserRepo) {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	return NewProjectRepo(writeDB, readDB), NewUserRepo(writeDB, readDB)
}

func createTestPI(t *testing.T, users *UserRepo, username string) *domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), newTestUser(username, domain.RolePI))
	require.NoError(t, err)
	return u
}

func TestProjectRepo_CRUD(t *testing.T) {
	projects, users := setupProjectRepos(t)
	ctx := context.Background()
	pi := createTestPI(t, users, "alice")

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	p, err := projects.Create(ctx, &domain.Project{
		ID:        domain.NewID(),
		Title:     "Protein Folding Survey",
		Summary:   "Initial survey of folding heuristics.",
		Status:    domain.StatusPlanning,
		PIID:      pi.ID,
		Tags:      "biology,ml",
		StartDate: &start,
	})
	require.NoError(t, err)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	found, err := projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Protein Folding Survey", found.Title)
	require.NotNil(t, found.StartDate)
	assert.True(t, found.StartDate.Equal(start))
	assert.Nil(t, found.EndDate)

	found.Status = domain.StatusActive
	found.Summary = "Survey underway."
	updated, err := projects.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, "Survey underway.", updated.Summary)
	assert.Equal(t, pi.ID, updated.PIID)

	list, total, err := projects.List(ctx, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, projects.Delete(ctx, p.ID))

	_, err = projects.GetByID(ctx, p.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestProjectRepo_UpdateMissing(t *testing.T) {
	projects, _ := setupProjectRepos(t)

	_, err := projects.Update(context.Background(), &domain.Project{
		ID:     "no-such-id",
		Title:  "ghost",
		Status: domain.StatusPlanning,
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}
