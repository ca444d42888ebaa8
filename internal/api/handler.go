// Package api provides the HTTP handlers for the research tracker REST API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"research-tracker/internal/auth"
	"research-tracker/internal/domain"
	"research-tracker/internal/middleware"
	"research-tracker/internal/service/research"
	"research-tracker/internal/service/security"
)

// Handler holds the services the HTTP surface delegates to.
type Handler struct {
	auth       *auth.Service
	users      *research.UserService
	projects   *research.ProjectService
	milestones *research.MilestoneService
	documents  *research.DocumentService
	membership *security.MembershipService
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(
	authSvc *auth.Service,
	users *research.UserService,
	projects *research.ProjectService,
	milestones *research.MilestoneService,
	documents *research.DocumentService,
	membership *security.MembershipService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:       authSvc,
		users:      users,
		projects:   projects,
		milestones: milestones,
		documents:  documents,
		membership: membership,
		logger:     logger,
	}
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// listResponse is the envelope for paginated collections.
type listResponse struct {
	Items         any    `json:"items"`
	TotalCount    int64  `json:"totalCount"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.logger.Error("encode response", "error", err)
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)

	// Keep the specific reason in the log even when the response is uniform.
	var denied *domain.AccessDeniedError
	if errors.As(err, &denied) {
		h.logger.Info("request denied",
			"reason", string(denied.Reason),
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()))
	} else if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()))
	}

	h.respondJSON(w, status, errorResponse{Code: status, Message: publicMessage(err, status)})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid JSON body",
		})
		return false
	}
	return true
}

// principal extracts the authenticated principal placed by the auth
// middleware. Routes registered behind it always have one; a miss means the
// route is wired wrong, and surfaces as 401.
func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "unauthorized",
		})
		return domain.Principal{}, false
	}
	return p, true
}

func pageFromQuery(r *http.Request) domain.PageRequest {
	page := domain.PageRequest{PageToken: r.URL.Query().Get("page_token")}
	if v := r.URL.Query().Get("max_results"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.MaxResults = n
		}
	}
	return page
}

func (h *Handler) respondList(w http.ResponseWriter, items any, page domain.PageRequest, total int64) {
	h.respondJSON(w, http.StatusOK, listResponse{
		Items:         items,
		TotalCount:    total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}
