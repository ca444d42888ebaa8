// Package research implements the project tracking services: projects,
// milestones, documents, and user administration. Every mutating operation
// is gated through the access evaluator before touching a repository.
package research

import (
	"context"
	"log/slog"

	"research-tracker/internal/domain"
	"research-tracker/internal/service/security"
	"research-tracker/internal/storage"
)

// ProjectService manages project lifecycle.
type ProjectService struct {
	authz    *security.AuthorizationService
	projects domain.ProjectRepository
	users    domain.UserRepository
	docs     domain.DocumentRepository
	blobs    storage.BlobStore
	logger   *slog.Logger
}

func NewProjectService(
	authz *security.AuthorizationService,
	projects domain.ProjectRepository,
	users domain.UserRepository,
	docs domain.DocumentRepository,
	blobs storage.BlobStore,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		authz:    authz,
		projects: projects,
		users:    users,
		docs:     docs,
		blobs:    blobs,
		logger:   logger,
	}
}

// Create validates and persists a new project. A PI always becomes the owner
// of projects they create; only admins may assign ownership to someone else
// via PIUsername.
func (s *ProjectService) Create(ctx context.Context, principal domain.Principal, req *domain.CreateProjectRequest) (*domain.Project, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionCreateProject, domain.ResourceRef{}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ownerUsername := req.PIUsername
	if ownerUsername == "" {
		ownerUsername = principal.Username
	}
	if ownerUsername != principal.Username && principal.Role != domain.RoleAdmin {
		return nil, domain.ErrAccessDenied(domain.DenyInsufficientRole,
			"only admins may assign project ownership")
	}
	owner, err := s.users.GetByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, err
	}
	if !owner.Role.AtLeast(domain.RolePI) {
		return nil, domain.ErrValidation("owning user %q must hold the PI role", ownerUsername)
	}

	project, err := s.projects.Create(ctx, &domain.Project{
		ID:        domain.NewID(),
		Title:     req.Title,
		Summary:   req.Summary,
		Status:    req.Status,
		PIID:      owner.ID,
		Tags:      req.Tags,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return nil, err
	}
	project.PI = owner
	return project, nil
}

// Get returns the project with its owning PI populated.
func (s *ProjectService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Project, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionReadProject, domain.ResourceRef{ProjectID: id}); err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachPI(ctx, project)
	return project, nil
}

// List returns a page of projects, newest first.
func (s *ProjectService) List(ctx context.Context, principal domain.Principal, page domain.PageRequest) ([]domain.Project, int64, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionReadProject, domain.ResourceRef{}); err != nil {
		return nil, 0, err
	}
	projects, total, err := s.projects.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	for i := range projects {
		s.attachPI(ctx, &projects[i])
	}
	return projects, total, nil
}

// Update applies the request to the project. Ownership never changes here.
func (s *ProjectService) Update(ctx context.Context, principal domain.Principal, id string, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionUpdateProject, domain.ResourceRef{ProjectID: id}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Title = req.Title
	project.Summary = req.Summary
	project.Status = req.Status
	project.Tags = req.Tags
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate

	updated, err := s.projects.Update(ctx, project)
	if err != nil {
		return nil, err
	}
	s.attachPI(ctx, updated)
	return updated, nil
}

// UpdateStatus changes only the lifecycle status, under the same rule as a
// full update.
func (s *ProjectService) UpdateStatus(ctx context.Context, principal domain.Principal, id string, status domain.ProjectStatus) (*domain.Project, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionUpdateProject, domain.ResourceRef{ProjectID: id}); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrValidation("unknown project status %q", status)
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Status = status

	updated, err := s.projects.Update(ctx, project)
	if err != nil {
		return nil, err
	}
	s.attachPI(ctx, updated)
	return updated, nil
}

// Delete removes the project. Memberships, milestones, and document rows go
// with it via foreign keys; document blobs are swept best-effort afterwards.
func (s *ProjectService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if err := s.authz.Authorize(ctx, principal, domain.ActionDeleteProject, domain.ResourceRef{ProjectID: id}); err != nil {
		return err
	}
	docs, err := s.docs.ListByProject(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	for _, d := range docs {
		if d.StorageRef == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, d.StorageRef); err != nil {
			s.logger.Warn("orphan blob left after project delete",
				"project_id", id, "storage_ref", d.StorageRef, "error", err)
		}
	}
	return nil
}

// attachPI fills in the owning PI. A lookup failure leaves PI nil rather
// than failing the read.
func (s *ProjectService) attachPI(ctx context.Context, p *domain.Project) {
	pi, err := s.users.GetByID(ctx, p.PIID)
	if err != nil {
		s.logger.Warn("project owner lookup failed", "project_id", p.ID, "pi_id", p.PIID, "error", err)
		return
	}
	p.PI = pi
}
