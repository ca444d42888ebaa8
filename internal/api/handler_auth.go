package api

import (
	"net/http"

	"research-tracker/internal/domain"
)

type loginResponse struct {
	Token string `json:"token"`
}

// Signup registers a new user with the default MEMBER role.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	u, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, u)
}

// Login exchanges a username and password for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, loginResponse{Token: token})
}
