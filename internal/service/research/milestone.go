package research

import (
	"context"

	"research-tracker/internal/domain"
	"research-tracker/internal/service/security"
)

// MilestoneService manages milestones under projects.
type MilestoneService struct {
	authz      *security.AuthorizationService
	milestones domain.MilestoneRepository
	projects   domain.ProjectRepository
	users      domain.UserRepository
}

func NewMilestoneService(
	authz *security.AuthorizationService,
	milestones domain.MilestoneRepository,
	projects domain.ProjectRepository,
	users domain.UserRepository,
) *MilestoneService {
	return &MilestoneService{authz: authz, milestones: milestones, projects: projects, users: users}
}

// Create adds a milestone to the project. New milestones start incomplete.
func (s *MilestoneService) Create(ctx context.Context, principal domain.Principal, projectID string, req *domain.CreateMilestoneRequest) (*domain.Milestone, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionWriteMilestone, domain.ResourceRef{ProjectID: projectID}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	creator, err := s.users.GetByUsername(ctx, principal.Username)
	if err != nil {
		return nil, err
	}

	return s.milestones.Create(ctx, &domain.Milestone{
		ID:          domain.NewID(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   false,
		CreatedBy:   creator.ID,
	})
}

func (s *MilestoneService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Milestone, error) {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, principal, domain.ActionReadMilestone, domain.ResourceRef{ProjectID: m.ProjectID}); err != nil {
		return nil, err
	}
	return m, nil
}

// ListByProject returns the project's milestones ordered by due date.
func (s *MilestoneService) ListByProject(ctx context.Context, principal domain.Principal, projectID string) ([]domain.Milestone, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionReadMilestone, domain.ResourceRef{ProjectID: projectID}); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.milestones.ListByProject(ctx, projectID)
}

// Update applies the request, including the completed flag.
func (s *MilestoneService) Update(ctx context.Context, principal domain.Principal, id string, req *domain.UpdateMilestoneRequest) (*domain.Milestone, error) {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, principal, domain.ActionWriteMilestone, domain.ResourceRef{ProjectID: m.ProjectID}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m.Title = req.Title
	m.Description = req.Description
	m.DueDate = req.DueDate
	m.Completed = req.Completed
	return s.milestones.Update(ctx, m)
}

func (s *MilestoneService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	m, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.Authorize(ctx, principal, domain.ActionWriteMilestone, domain.ResourceRef{ProjectID: m.ProjectID}); err != nil {
		return err
	}
	return s.milestones.Delete(ctx, id)
}
