package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"research-tracker/internal/domain"
)

// CreateMilestone adds a milestone to the project named by the projectId
// query parameter.
func (h *Handler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		h.respondError(w, r, domain.ErrValidation("projectId query parameter is required"))
		return
	}
	var req domain.CreateMilestoneRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	m, err := h.milestones.Create(r.Context(), principal, projectID, &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, m)
}

// ListMilestonesByProject returns the project's milestones.
func (h *Handler) ListMilestonesByProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	milestones, err := h.milestones.ListByProject(r.Context(), principal, chi.URLParam(r, "projectId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, milestones)
}

// GetMilestone returns a single milestone.
func (h *Handler) GetMilestone(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	m, err := h.milestones.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, m)
}

// UpdateMilestone replaces the milestone's mutable fields.
func (h *Handler) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req domain.UpdateMilestoneRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	m, err := h.milestones.Update(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, m)
}

// DeleteMilestone removes a milestone.
func (h *Handler) DeleteMilestone(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	if err := h.milestones.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
