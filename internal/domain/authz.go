package domain

// Action names an operation subject to authorization. Every gated endpoint
// maps to exactly one Action; the policy table in the security service is
// the single place actions are bound to rules.
type Action string

const (
	ActionCreateProject Action = "project.create"
	ActionReadProject   Action = "project.read"
	ActionUpdateProject Action = "project.update"
	ActionDeleteProject Action = "project.delete"

	ActionAddMember    Action = "project.members.add"
	ActionRemoveMember Action = "project.members.remove"
	ActionListMembers  Action = "project.members.list"

	ActionWriteMilestone Action = "milestone.write"
	ActionReadMilestone  Action = "milestone.read"

	ActionWriteDocument Action = "document.write"
	ActionReadDocument  Action = "document.read"

	ActionListUsers     Action = "user.list"
	ActionDeleteUser    Action = "user.delete"
	ActionReadUser      Action = "user.read"
	ActionListUserRoles Action = "user.list_by_role"
)

// ResourceRef identifies the resource an Action targets. ProjectID is set
// for project-scoped actions and empty for coarse (role-only) actions.
type ResourceRef struct {
	ProjectID string
}
