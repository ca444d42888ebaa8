package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-tracker/internal/config"
	internaldb "research-tracker/internal/db"
	"research-tracker/internal/domain"
)

func testDeps(t *testing.T, cfg *config.Config) Deps {
	t.Helper()
	writeDB, readDB := internaldb.OpenTestSQLite(t)
	if cfg.UploadDir == "" {
		cfg.UploadDir = t.TempDir()
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "app-test-secret"
	}
	return Deps{
		Cfg:     cfg,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNew_BootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	deps := testDeps(t, &config.Config{
		AdminUsername: "root",
		AdminPassword: "bootstrap-pw",
	})

	a, err := New(ctx, deps)
	require.NoError(t, err)

	token, err := a.Services.Auth.Login(ctx, domain.LoginRequest{
		Username: "root", Password: "bootstrap-pw",
	})
	require.NoError(t, err)

	principal, err := a.Verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, principal.Role)

	// Wiring twice against the same store must not duplicate the admin.
	_, err = New(ctx, deps)
	require.NoError(t, err)
	users, total, err := a.Services.Users.List(ctx, principal, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
}

func TestNew_SeedFile(t *testing.T) {
	ctx := context.Background()
	seedYAML := strings.TrimSpace(`
users:
  - username: alice
    password: alice-pw-long
    fullName: Alice Moreau
    role: PI
  - username: bob
    password: bob-pw-long
    fullName: Bob Tanaka
    role: MEMBER
projects:
  - title: Coral Reef Monitoring
    summary: Long-term reef health survey.
    status: ACTIVE
    tags: marine,ecology
    pi: alice
    members: [bob]
`)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	deps := testDeps(t, &config.Config{SeedFile: path})
	a, err := New(ctx, deps)
	require.NoError(t, err)

	alice := domain.Principal{Username: "alice", Role: domain.RolePI}
	projects, total, err := a.Services.Projects.List(ctx, alice, domain.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, domain.StatusActive, projects[0].Status)

	members, err := a.Services.Membership.ListMembers(ctx, alice, projects[0].ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "bob", members[0].Username)

	// Seeding is idempotent.
	_, err = New(ctx, deps)
	require.NoError(t, err)
	_, total, err = a.Services.Projects.List(ctx, alice, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
