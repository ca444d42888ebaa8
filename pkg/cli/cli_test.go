package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(listEnvelope[userView]{
			Items: []userView{
				{ID: "u1", Username: "alice", FullName: "Alice Moreau", Role: "PI"},
				{ID: "u2", Username: "bob", FullName: "Bob Tanaka", Role: "MEMBER"},
			},
			TotalCount: 2,
		})
	})
	mux.HandleFunc("/api/users/role/PI", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(listEnvelope[userView]{
			Items:      []userView{{ID: "u1", Username: "alice", FullName: "Alice Moreau", Role: "PI"}},
			TotalCount: 1,
		})
	})
	mux.HandleFunc("/api/projects/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(listEnvelope[projectView]{
			Items: []projectView{{
				ID: "p1", Title: "Reef Survey", Status: "ACTIVE",
				PI: &userView{Username: "alice"},
			}},
			TotalCount: 1,
		})
	})
	mux.HandleFunc("/api/projects/p1/members", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]userView{
			{ID: "u2", Username: "bob", FullName: "Bob Tanaka", Role: "MEMBER"},
		})
	})
	return httptest.NewServer(mux)
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	restore := captureStdout(t)
	err := cmd.Execute()
	return restore(), err
}

func TestUsersListCmd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newListServer(t)
	defer srv.Close()

	out, err := runRoot(t, "--host", srv.URL, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "USERNAME")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")

	out, err = runRoot(t, "--host", srv.URL, "--output", "json", "users", "list", "--role", "PI")
	require.NoError(t, err)

	var envelope listEnvelope[userView]
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	require.Len(t, envelope.Items, 1)
	assert.Equal(t, "alice", envelope.Items[0].Username)
}

func TestProjectsCmds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newListServer(t)
	defer srv.Close()

	out, err := runRoot(t, "--host", srv.URL, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Reef Survey")
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "alice")

	out, err = runRoot(t, "--host", srv.URL, "projects", "members", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "bob")
}

func TestRootRejectsBadFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := runRoot(t, "--output", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")

	_, err = runRoot(t, "--host", "ftp://nope", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme must be http or https")
}

func TestRootResolvesProfileConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	srv := newListServer(t)
	defer srv.Close()

	require.NoError(t, SaveUserConfig(&UserConfig{
		CurrentProfile: "default",
		Profiles: map[string]Profile{
			"default": {Host: srv.URL, Output: "json"},
		},
	}))

	out, err := runRoot(t, "projects", "list")
	require.NoError(t, err)

	var envelope listEnvelope[projectView]
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, int64(1), envelope.TotalCount)
}

func TestVersionCmd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "trackerctl version dev")
}
