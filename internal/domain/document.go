package domain

import "time"

// Document is file metadata attached to a project. StorageRef is an opaque
// reference into the blob store (a relative path or object key); the core
// never inspects file bytes.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StorageRef  string    `json:"storageRef,omitempty"`
	ContentType string    `json:"contentType,omitempty"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// CreateDocumentRequest holds parameters for creating document metadata
// (no file upload).
type CreateDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks that the request is well-formed.
func (r *CreateDocumentRequest) Validate() error {
	if r.Title == "" {
		return ErrValidation("document title is required")
	}
	return nil
}

// UpdateDocumentRequest holds parameters for updating document metadata.
// The stored file, uploader, and project binding are immutable.
type UpdateDocumentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks that the request is well-formed.
func (r *UpdateDocumentRequest) Validate() error {
	if r.Title == "" {
		return ErrValidation("document title is required")
	}
	return nil
}
