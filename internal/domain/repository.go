package domain

import "context"

// UserRepository is the credential store: the durable mapping from identity
// to password hash and role.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, page PageRequest) ([]User, int64, error)
	ListByRole(ctx context.Context, role Role, page PageRequest) ([]User, int64, error)
	ListExcludingRole(ctx context.Context, role Role, page PageRequest) ([]User, int64, error)
	Delete(ctx context.Context, id string) error
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *Project) (*Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, page PageRequest) ([]Project, int64, error)
	Update(ctx context.Context, p *Project) (*Project, error)
	Delete(ctx context.Context, id string) error
}

// MembershipRepository is the membership registry: the per-project member
// set, independent of global role. Add and Remove are idempotent.
type MembershipRepository interface {
	Add(ctx context.Context, projectID, userID string) error
	Remove(ctx context.Context, projectID, userID string) error
	ListMembers(ctx context.Context, projectID string) ([]User, error)
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
}

// MilestoneRepository persists milestones.
type MilestoneRepository interface {
	Create(ctx context.Context, m *Milestone) (*Milestone, error)
	GetByID(ctx context.Context, id string) (*Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]Milestone, error)
	Update(ctx context.Context, m *Milestone) (*Milestone, error)
	Delete(ctx context.Context, id string) error
}

// DocumentRepository persists document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, d *Document) (*Document, error)
	GetByID(ctx context.Context, id string) (*Document, error)
	ListByProject(ctx context.Context, projectID string) ([]Document, error)
	ListStorageRefs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, d *Document) (*Document, error)
	Delete(ctx context.Context, id string) error
}
