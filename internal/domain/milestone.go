package domain

import "time"

// Milestone is a dated deliverable under a project.
type Milestone struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateMilestoneRequest holds parameters for creating a milestone.
// New milestones always start incomplete.
type CreateMilestoneRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// Validate checks that the request is well-formed.
func (r *CreateMilestoneRequest) Validate() error {
	if r.Title == "" {
		return ErrValidation("milestone title is required")
	}
	return nil
}

// UpdateMilestoneRequest holds parameters for updating a milestone.
type UpdateMilestoneRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
}

// Validate checks that the request is well-formed.
func (r *UpdateMilestoneRequest) Validate() error {
	if r.Title == "" {
		return ErrValidation("milestone title is required")
	}
	return nil
}
