// Package security implements the access evaluator and membership
// administration: the policy engine deciding, per request, whether an
// authenticated principal may perform an action on a resource.
package security

import (
	"context"

	"research-tracker/internal/domain"
)

// ruleKind selects how an action is evaluated.
type ruleKind int

const (
	// roleOnly actions need a minimum global role and nothing else.
	roleOnly ruleKind = iota
	// anyAuthenticated actions are open to every verified principal.
	anyAuthenticated
	// ownerOnly actions need ADMIN, or PI ownership of the target project.
	ownerOnly
	// projectWrite actions need ADMIN, PI ownership, or membership in the
	// target project, and at least the MEMBER role.
	projectWrite
)

type rule struct {
	kind    ruleKind
	minRole domain.Role
}

// policy is the single binding from action to rule. Endpoint handlers never
// compare roles themselves; they name an action and call Authorize.
var policy = map[domain.Action]rule{
	domain.ActionCreateProject: {kind: roleOnly, minRole: domain.RolePI},
	domain.ActionReadProject:   {kind: anyAuthenticated},
	domain.ActionUpdateProject: {kind: ownerOnly},
	domain.ActionDeleteProject: {kind: ownerOnly},

	domain.ActionAddMember:    {kind: ownerOnly},
	domain.ActionRemoveMember: {kind: ownerOnly},
	domain.ActionListMembers:  {kind: projectWrite},

	domain.ActionWriteMilestone: {kind: projectWrite},
	domain.ActionReadMilestone:  {kind: anyAuthenticated},

	domain.ActionWriteDocument: {kind: projectWrite},
	domain.ActionReadDocument:  {kind: anyAuthenticated},

	domain.ActionListUsers:     {kind: roleOnly, minRole: domain.RoleAdmin},
	domain.ActionDeleteUser:    {kind: roleOnly, minRole: domain.RoleAdmin},
	domain.ActionReadUser:      {kind: anyAuthenticated},
	domain.ActionListUserRoles: {kind: roleOnly, minRole: domain.RolePI},
}

// AuthorizationService is the access evaluator. Decisions are a pure
// function of the principal's role claim and current registry state; nothing
// is cached across requests.
type AuthorizationService struct {
	users    domain.UserRepository
	projects domain.ProjectRepository
	members  domain.MembershipRepository
}

func NewAuthorizationService(
	users domain.UserRepository,
	projects domain.ProjectRepository,
	members domain.MembershipRepository,
) *AuthorizationService {
	return &AuthorizationService{users: users, projects: projects, members: members}
}

// Authorize returns nil when principal may perform action on ref, and an
// AccessDeniedError carrying the deny reason otherwise. ADMIN principals
// pass every rule without consulting the registry.
func (s *AuthorizationService) Authorize(ctx context.Context, principal domain.Principal, action domain.Action, ref domain.ResourceRef) error {
	r, ok := policy[action]
	if !ok {
		return domain.ErrAccessDenied(domain.DenyInsufficientRole, "unknown action %q", action)
	}

	if principal.Role == domain.RoleAdmin {
		return nil
	}

	switch r.kind {
	case anyAuthenticated:
		return nil

	case roleOnly:
		if !principal.Role.AtLeast(r.minRole) {
			return domain.ErrAccessDenied(domain.DenyInsufficientRole,
				"role %s cannot perform %s", principal.Role, action)
		}
		return nil

	case ownerOnly:
		if principal.Role != domain.RolePI {
			return domain.ErrAccessDenied(domain.DenyInsufficientRole,
				"role %s cannot perform %s", principal.Role, action)
		}
		owns, err := s.ownsProject(ctx, principal.Username, ref.ProjectID)
		if err != nil {
			return err
		}
		if !owns {
			return domain.ErrAccessDenied(domain.DenyNotOwner,
				"%s does not own project %s", principal.Username, ref.ProjectID)
		}
		return nil

	case projectWrite:
		if !principal.Role.AtLeast(domain.RoleMember) {
			return domain.ErrAccessDenied(domain.DenyInsufficientRole,
				"role %s cannot perform %s", principal.Role, action)
		}
		user, err := s.users.GetByUsername(ctx, principal.Username)
		if err != nil {
			return err
		}
		project, err := s.projects.GetByID(ctx, ref.ProjectID)
		if err != nil {
			return err
		}
		if project.PIID == user.ID {
			return nil
		}
		isMember, err := s.members.IsMember(ctx, ref.ProjectID, user.ID)
		if err != nil {
			return err
		}
		if !isMember {
			return domain.ErrAccessDenied(domain.DenyNotProjectMember,
				"%s is not a member of project %s", principal.Username, ref.ProjectID)
		}
		return nil
	}

	return domain.ErrAccessDenied(domain.DenyInsufficientRole, "unhandled action %q", action)
}

func (s *AuthorizationService) ownsProject(ctx context.Context, username, projectID string) (bool, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return false, err
	}
	return project.PIID == user.ID, nil
}
