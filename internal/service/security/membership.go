package security

import (
	"context"

	"research-tracker/internal/domain"
)

// MembershipService administers the per-project member set. Mutations run
// through the single-connection write pool, so concurrent add/remove on the
// same project serialize at the storage layer.
type MembershipService struct {
	authz    *AuthorizationService
	users    domain.UserRepository
	projects domain.ProjectRepository
	members  domain.MembershipRepository
}

func NewMembershipService(
	authz *AuthorizationService,
	users domain.UserRepository,
	projects domain.ProjectRepository,
	members domain.MembershipRepository,
) *MembershipService {
	return &MembershipService{authz: authz, users: users, projects: projects, members: members}
}

// AddMember adds the named user to the project's member set. Adding an
// existing member is a no-op.
func (s *MembershipService) AddMember(ctx context.Context, principal domain.Principal, projectID, username string) error {
	if err := s.authz.Authorize(ctx, principal, domain.ActionAddMember, domain.ResourceRef{ProjectID: projectID}); err != nil {
		return err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	return s.members.Add(ctx, projectID, user.ID)
}

// RemoveMember removes the named user from the project's member set.
// Removing a non-member is a no-op.
func (s *MembershipService) RemoveMember(ctx context.Context, principal domain.Principal, projectID, username string) error {
	if err := s.authz.Authorize(ctx, principal, domain.ActionRemoveMember, domain.ResourceRef{ProjectID: projectID}); err != nil {
		return err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return err
	}
	return s.members.Remove(ctx, projectID, user.ID)
}

// ListMembers returns the project's current member set.
func (s *MembershipService) ListMembers(ctx context.Context, principal domain.Principal, projectID string) ([]domain.User, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionListMembers, domain.ResourceRef{ProjectID: projectID}); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.members.ListMembers(ctx, projectID)
}
