package domain

import "strings"

// Role is the closed set of global roles a user can hold. Exactly one role
// per user at any time; registration defaults to RoleMember.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RolePI     Role = "PI"
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
)

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RolePI, RoleMember, RoleViewer:
		return r, nil
	}
	return "", ErrValidation("unknown role %q", s)
}

// rank orders roles for coarse hierarchy checks: ADMIN > PI > MEMBER > VIEWER.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RolePI:
		return 2
	case RoleMember:
		return 1
	case RoleViewer:
		return 0
	}
	return -1
}

// AtLeast reports whether r sits at or above min in the role hierarchy.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= min.rank()
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	return r.rank() >= 0
}
