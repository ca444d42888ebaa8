package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"research-tracker/internal/auth"
	"research-tracker/internal/middleware"
)

// Routes mounts every API route. Auth endpoints and the health check are
// public; everything else sits behind the session middleware.
func (h *Handler) Routes(r chi.Router, verifier *auth.TokenVerifier) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(verifier, h.logger))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.ListUsers)
				r.Get("/role/{role}", h.ListUsersByRole)
				r.Get("/all-for-membership", h.ListMembershipCandidates)
				r.Get("/me", h.Me)
				r.Get("/{id}", h.GetUser)
				r.Delete("/{id}", h.DeleteUser)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", h.CreateProject)
				r.Get("/", h.ListProjects)
				r.Get("/{id}", h.GetProject)
				r.Put("/{id}", h.UpdateProject)
				r.Patch("/{id}/status", h.UpdateProjectStatus)
				r.Delete("/{id}", h.DeleteProject)
				r.Post("/{id}/members", h.AddMember)
				r.Delete("/{id}/members/{username}", h.RemoveMember)
				r.Get("/{id}/members", h.ListMembers)
			})

			r.Route("/milestones", func(r chi.Router) {
				r.Post("/", h.CreateMilestone)
				r.Get("/project/{projectId}", h.ListMilestonesByProject)
				r.Get("/{id}", h.GetMilestone)
				r.Put("/{id}", h.UpdateMilestone)
				r.Delete("/{id}", h.DeleteMilestone)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", h.CreateDocument)
				r.Post("/upload", h.UploadDocument)
				r.Get("/", h.ListDocumentsByProject)
				r.Get("/{id}", h.GetDocument)
				r.Get("/{id}/download", h.DownloadDocument)
				r.Put("/{id}", h.UpdateDocument)
				r.Delete("/{id}", h.DeleteDocument)
			})
		})
	})
}
