package research

import (
	"context"

	"research-tracker/internal/domain"
	"research-tracker/internal/service/security"
)

// UserService handles user administration and profile reads.
type UserService struct {
	authz *security.AuthorizationService
	users domain.UserRepository
}

func NewUserService(authz *security.AuthorizationService, users domain.UserRepository) *UserService {
	return &UserService{authz: authz, users: users}
}

// List returns a page of all users. Admin only.
func (s *UserService) List(ctx context.Context, principal domain.Principal, page domain.PageRequest) ([]domain.User, int64, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionListUsers, domain.ResourceRef{}); err != nil {
		return nil, 0, err
	}
	return s.users.List(ctx, page)
}

// ListByRole returns users holding the given role.
func (s *UserService) ListByRole(ctx context.Context, principal domain.Principal, role domain.Role, page domain.PageRequest) ([]domain.User, int64, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionListUserRoles, domain.ResourceRef{}); err != nil {
		return nil, 0, err
	}
	if !role.Valid() {
		return nil, 0, domain.ErrValidation("unknown role %q", role)
	}
	return s.users.ListByRole(ctx, role, page)
}

// ListMembershipCandidates returns every non-admin user; these are the
// identities a PI can add to a project.
func (s *UserService) ListMembershipCandidates(ctx context.Context, principal domain.Principal, page domain.PageRequest) ([]domain.User, int64, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionListUserRoles, domain.ResourceRef{}); err != nil {
		return nil, 0, err
	}
	return s.users.ListExcludingRole(ctx, domain.RoleAdmin, page)
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.User, error) {
	if err := s.authz.Authorize(ctx, principal, domain.ActionReadUser, domain.ResourceRef{}); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Me returns the caller's own record.
func (s *UserService) Me(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return s.users.GetByUsername(ctx, principal.Username)
}

// Delete removes a user. Admin only. A user who still owns projects cannot
// be deleted; the foreign key surfaces that as a conflict.
func (s *UserService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if err := s.authz.Authorize(ctx, principal, domain.ActionDeleteUser, domain.ResourceRef{}); err != nil {
		return err
	}
	if principal.Role == domain.RoleAdmin {
		self, err := s.users.GetByUsername(ctx, principal.Username)
		if err == nil && self.ID == id {
			return domain.ErrValidation("admins cannot delete their own account")
		}
	}
	return s.users.Delete(ctx, id)
}
