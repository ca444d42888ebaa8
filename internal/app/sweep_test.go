package app

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "research-tracker/internal/db"
	"research-tracker/internal/db/repository"
	"research-tracker/internal/domain"
	"research-tracker/internal/storage"
)

func TestSweeper_RemovesOnlyOrphans(t *testing.T) {
	ctx := context.Background()
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	users := repository.NewUserRepo(writeDB, readDB)
	projects := repository.NewProjectRepo(writeDB, readDB)
	docs := repository.NewDocumentRepo(writeDB, readDB)

	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pi, err := users.Create(ctx, &domain.User{
		ID: domain.NewID(), Username: "alice",
		PasswordHash: "x", Role: domain.RolePI,
	})
	require.NoError(t, err)
	project, err := projects.Create(ctx, &domain.Project{
		ID: domain.NewID(), Title: "Soil Survey",
		Status: domain.StatusPlanning, PIID: pi.ID,
	})
	require.NoError(t, err)

	require.NoError(t, blobs.Save(ctx, "keep_report.pdf", strings.NewReader("kept")))
	require.NoError(t, blobs.Save(ctx, "orphan_a.bin", strings.NewReader("a")))
	require.NoError(t, blobs.Save(ctx, "orphan_b.bin", strings.NewReader("b")))

	_, err = docs.Create(ctx, &domain.Document{
		ID: domain.NewID(), ProjectID: project.ID, Title: "Report",
		StorageRef: "keep_report.pdf", UploadedBy: pi.ID,
	})
	require.NoError(t, err)

	sweeper := NewSweeper(docs, blobs, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, 2, sweeper.Run(ctx))

	remaining, err := blobs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep_report.pdf"}, remaining)

	rc, err := blobs.Open(ctx, "keep_report.pdf")
	require.NoError(t, err)
	rc.Close()

	// A second run finds nothing to do.
	assert.Equal(t, 0, sweeper.Run(ctx))
}
