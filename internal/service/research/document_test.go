package research

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-tracker/internal/domain"
)

func uploadTestDocument(t *testing.T, f *fixture, principal domain.Principal, projectID, filename, content string) *domain.Document {
	t.Helper()
	doc, err := f.documents.Upload(context.Background(), principal, projectID,
		&domain.CreateDocumentRequest{Title: filename},
		filename, "application/octet-stream", strings.NewReader(content))
	require.NoError(t, err)
	return doc
}

func TestDocumentService_UploadDownload(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice", domain.RolePI)
	p := f.createProject(t, alice, "Telescope Calibration")

	doc, err := f.documents.Upload(ctx, alice, p.ID,
		&domain.CreateDocumentRequest{Title: "Calibration notes", Description: "Night 1"},
		"notes v1.txt", "text/plain", strings.NewReader("focus drift observed"))
	require.NoError(t, err)
	assert.Contains(t, doc.StorageRef, "_notes v1.txt")
	assert.Equal(t, "text/plain", doc.ContentType)

	got, rc, err := f.documents.Download(ctx, alice, doc.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "focus drift observed", string(data))
	assert.Equal(t, doc.ID, got.ID)
}

func TestDocumentService_UploadSanitizesFilename(t *testing.T) {
	f := setup(t)
	alice := f.createUser(t, "alice", domain.RolePI)
	p := f.createProject(t, alice, "Seed Bank")

	doc := uploadTestDocument(t, f, alice, p.ID, "../../etc/passwd", "not a real file")
	assert.NotContains(t, doc.StorageRef, "/")
	assert.NotContains(t, doc.StorageRef, "..")
}

func TestDocumentService_MetadataOnlyHasNoDownload(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice", domain.RolePI)
	p := f.createProject(t, alice, "Drone Survey")

	doc, err := f.documents.Create(ctx, alice, p.ID, &domain.CreateDocumentRequest{Title: "Flight plan"})
	require.NoError(t, err)
	assert.Empty(t, doc.StorageRef)

	_, _, err = f.documents.Download(ctx, alice, doc.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDocumentService_WriteGatedByMembership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice", domain.RolePI)
	bob := f.createUser(t, "bob", domain.RoleMember)
	p := f.createProject(t, alice, "Ocean Acidification")

	_, err := f.documents.Create(ctx, bob, p.ID, &domain.CreateDocumentRequest{Title: "pH log"})
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, domain.DenyNotProjectMember, denied.Reason)

	require.NoError(t, f.membership.AddMember(ctx, alice, p.ID, "bob"))

	doc, err := f.documents.Create(ctx, bob, p.ID, &domain.CreateDocumentRequest{Title: "pH log"})
	require.NoError(t, err)

	// Any authenticated user can read; a viewer with no membership included.
	viola := f.createUser(t, "viola", domain.RoleViewer)
	got, err := f.documents.Get(ctx, viola, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "pH log", got.Title)

	// But a viewer cannot update or delete.
	_, err = f.documents.Update(ctx, viola, doc.ID, &domain.UpdateDocumentRequest{Title: "renamed"})
	require.ErrorAs(t, err, &denied)
}

func TestDocumentService_DeleteRemovesBlob(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice", domain.RolePI)
	p := f.createProject(t, alice, "Wetland Restoration")

	doc := uploadTestDocument(t, f, alice, p.ID, "map.png", "png bytes")
	require.NoError(t, f.documents.Delete(ctx, alice, doc.ID))

	_, err := f.documents.Get(ctx, alice, doc.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = f.blobs.Open(ctx, doc.StorageRef)
	require.ErrorAs(t, err, &nf)
}

func TestDocumentService_UpdateDeniedBeforeValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice", domain.RolePI)
	bob := f.createUser(t, "bob", domain.RoleMember)
	p := f.createProject(t, alice, "Ocean Acidification")
	doc := uploadTestDocument(t, f, alice, p.ID, "ph.csv", "7.8,7.7")

	// A non-member sending a bad payload must see the same denial as
	// with a good one, not a validation error.
	_, err := f.documents.Update(ctx, bob, doc.ID, &domain.UpdateDocumentRequest{Title: ""})
	var denied *domain.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, domain.DenyNotProjectMember, denied.Reason)

	require.NoError(t, f.membership.AddMember(ctx, alice, p.ID, "bob"))
	_, err = f.documents.Update(ctx, bob, doc.ID, &domain.UpdateDocumentRequest{Title: ""})
	var invalid *domain.ValidationError
	require.ErrorAs(t, err, &invalid)
}
