package research

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"research-tracker/internal/domain"
	"research-tracker/internal/service/security"
	"research-tracker/internal/storage"
)

// DocumentService manages document metadata and the blobs behind it. Storage
// refs are `<uuid>_<original name>` so a directory listing stays readable.
type DocumentService struct {
	authz    *security.AuthorizationService
	docs     domain.DocumentRepository
	projects domain.ProjectRepository
	users    domain.UserRepository
	blobs    storage.BlobStore
	logger   *slog.Logger
}

func NewDocumentService(
	authz *security.AuthorizationService,
	docs domain.DocumentRepository,
	projects domain.ProjectRepository,
	users domain.UserRepository,
	blobs storage.BlobStore,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		authz:    authz,
		docs:     docs,
		projects: projects,
		users:    users,
		blobs:    blobs,
		logger:   logger,
	}
}

// Create records document metadata with no stored file.
func (s *DocumentService) Create(ctx context.Context, principal domain.Principal, projectID string, req *domain.CreateDocumentRequest) (*domain.Document, error) {
	uploader, err := s.prepareWrite(ctx, principal, projectID, req)
	if err != nil {
		return nil, err
	}
	return s.docs.Create(ctx, &domain.Document{
		ID:          domain.NewID(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		UploadedBy:  uploader.ID,
	})
}

// Upload stores the file bytes and records metadata pointing at them. If the
// metadata insert fails the stored blob is removed again, best-effort.
func (s *DocumentService) Upload(ctx context.Context, principal domain.Principal, projectID string, req *domain.CreateDocumentRequest, filename, contentType string, r io.Reader) (*domain.Document, error) {
	uploader, err := s.prepareWrite(ctx, principal, projectID, req)
	if err != nil {
		return nil, err
	}

	ref := domain.NewID() + "_" + sanitizeFilename(filename)
	if err := s.blobs.Save(ctx, ref, r); err != nil {
		return nil, err
	}

	doc, err := s.docs.Create(ctx, &domain.Document{
		ID:          domain.NewID(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		StorageRef:  ref,
		ContentType: contentType,
		UploadedBy:  uploader.ID,
	})
	if err != nil {
		if delErr := s.blobs.Delete(ctx, ref); delErr != nil {
			s.logger.Warn("orphan blob left after failed upload", "storage_ref", ref, "error", delErr)
		}
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Document, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, principal, domain.ActionReadDocument, domain.ResourceRef{ProjectID: d.ProjectID}); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DocumentService) ListByProject(ctx context.Context, principal domain.Principal, projectID string) ([]domain.Document, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionReadDocument, domain.ResourceRef{ProjectID: projectID}); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.docs.ListByProject(ctx, projectID)
}

// Download returns the document and a reader over its stored bytes. The
// caller closes the reader.
func (s *DocumentService) Download(ctx context.Context, principal domain.Principal, id string) (*domain.Document, io.ReadCloser, error) {
	d, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, nil, err
	}
	if d.StorageRef == "" {
		return nil, nil, domain.ErrNotFound("document %s has no stored file", id)
	}
	rc, err := s.blobs.Open(ctx, d.StorageRef)
	if err != nil {
		return nil, nil, err
	}
	return d, rc, nil
}

// Update changes title and description. The stored file is immutable.
func (s *DocumentService) Update(ctx context.Context, principal domain.Principal, id string, req *domain.UpdateDocumentRequest) (*domain.Document, error) {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, principal, domain.ActionWriteDocument, domain.ResourceRef{ProjectID: d.ProjectID}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d.Title = req.Title
	d.Description = req.Description
	return s.docs.Update(ctx, d)
}

// Delete removes the blob best-effort, then the row. A blob that cannot be
// removed is logged and left for the orphan sweep.
func (s *DocumentService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	d, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.Authorize(ctx, principal, domain.ActionWriteDocument, domain.ResourceRef{ProjectID: d.ProjectID}); err != nil {
		return err
	}
	if d.StorageRef != "" {
		if err := s.blobs.Delete(ctx, d.StorageRef); err != nil {
			s.logger.Warn("orphan blob left after document delete",
				"document_id", id, "storage_ref", d.StorageRef, "error", err)
		}
	}
	return s.docs.Delete(ctx, id)
}

func (s *DocumentService) prepareWrite(ctx context.Context, principal domain.Principal, projectID string, req *domain.CreateDocumentRequest) (*domain.User, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionWriteDocument, domain.ResourceRef{ProjectID: projectID}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.users.GetByUsername(ctx, principal.Username)
}

// sanitizeFilename strips any path components and characters that would
// make a ref invalid for the local store.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
