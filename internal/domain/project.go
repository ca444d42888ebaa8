package domain

import "time"

// ProjectStatus is the closed set of project lifecycle states.
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "PLANNING"
	StatusActive    ProjectStatus = "ACTIVE"
	StatusOnHold    ProjectStatus = "ON_HOLD"
	StatusCompleted ProjectStatus = "COMPLETED"
	StatusArchived  ProjectStatus = "ARCHIVED"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Project is a research project owned by a PI. The owning PI is not required
// to appear in the member set; ownership and membership are evaluated
// separately by the access evaluator.
type Project struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Summary   string        `json:"summary,omitempty"`
	Status    ProjectStatus `json:"status"`
	PIID      string        `json:"piId"`
	PI        *User         `json:"pi,omitempty"`
	Tags      string        `json:"tags,omitempty"` // comma-separated, e.g. "AI, environment"
	StartDate *time.Time    `json:"startDate,omitempty"`
	EndDate   *time.Time    `json:"endDate,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreateProjectRequest holds parameters for creating a project.
type CreateProjectRequest struct {
	Title      string        `json:"title"`
	Summary    string        `json:"summary"`
	Status     ProjectStatus `json:"status"`
	Tags       string        `json:"tags"`
	StartDate  *time.Time    `json:"startDate"`
	EndDate    *time.Time    `json:"endDate"`
	PIUsername string        `json:"piUsername"`
}

// Validate checks that the request is well-formed.
func (r *CreateProjectRequest) Validate() error {
	if r.Title == "" {
		return ErrValidation("project title is required")
	}
	if r.Status == "" {
		r.Status = StatusPlanning
	}
	if !r.Status.Valid() {
		return ErrValidation("unknown project status %q", r.Status)
	}
	return nil
}

// UpdateProjectRequest holds parameters for updating a project. All fields
// are applied; the owning PI is never changed by an update.
type UpdateProjectRequest struct {
	Title     string        `json:"title"`
	Summary   string        `json:"summary"`
	Status    ProjectStatus `json:"status"`
	Tags      string        `json:"tags"`
	StartDate *time.Time    `json:"startDate"`
	EndDate   *time.Time    `json:"endDate"`
}

// Validate checks that the request is well-formed.
func (r *UpdateProjectRequest) Validate() error {
	if r.Title == "" {
		return ErrValidation("project title is required")
	}
	if !r.Status.Valid() {
		return ErrValidation("unknown project status %q", r.Status)
	}
	return nil
}
