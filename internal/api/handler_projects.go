package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"research-tracker/internal/domain"
)

// CreateProject creates a project. PIs create for themselves; admins may
// name another PI as the owner.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req domain.CreateProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	p, err := h.projects.Create(r.Context(), principal, &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, p)
}

// ListProjects returns a page of projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	page := pageFromQuery(r)
	projects, total, err := h.projects.List(r.Context(), principal, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondList(w, projects, page, total)
}

// GetProject returns a single project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	p, err := h.projects.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, p)
}

// UpdateProject replaces the mutable project fields.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req domain.UpdateProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	p, err := h.projects.Update(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, p)
}

type updateStatusRequest struct {
	Status domain.ProjectStatus `json:"status"`
}

// UpdateProjectStatus changes only the lifecycle status.
func (h *Handler) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	p, err := h.projects.UpdateStatus(r.Context(), principal, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, p)
}

// DeleteProject removes the project and everything under it.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	if err := h.projects.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMemberRequest struct {
	Username string `json:"username"`
}

// AddMember adds a user to the project's member set.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req addMemberRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" {
		h.respondError(w, r, domain.ErrValidation("username is required"))
		return
	}
	if err := h.membership.AddMember(r.Context(), principal, chi.URLParam(r, "id"), req.Username); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember removes a user from the project's member set.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	err := h.membership.RemoveMember(r.Context(), principal, chi.URLParam(r, "id"), chi.URLParam(r, "username"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers returns the project's member set.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	members, err := h.membership.ListMembers(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, members)
}
