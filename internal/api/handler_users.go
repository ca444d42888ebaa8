package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"research-tracker/internal/domain"
)

// ListUsers returns all users. Admin only.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	page := pageFromQuery(r)
	users, total, err := h.users.List(r.Context(), principal, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondList(w, users, page, total)
}

// ListUsersByRole returns users holding the role in the path.
func (h *Handler) ListUsersByRole(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	role, err := domain.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	page := pageFromQuery(r)
	users, total, err := h.users.ListByRole(r.Context(), principal, role, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondList(w, users, page, total)
}

// ListMembershipCandidates returns every non-admin user.
func (h *Handler) ListMembershipCandidates(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	page := pageFromQuery(r)
	users, total, err := h.users.ListMembershipCandidates(r.Context(), principal, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondList(w, users, page, total)
}

// Me returns the caller's own user record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	u, err := h.users.Me(r.Context(), principal)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, u)
}

// GetUser returns a user by ID.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	u, err := h.users.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, u)
}

// DeleteUser removes a user. Admin only.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	if err := h.users.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
