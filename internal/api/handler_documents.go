package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"research-tracker/internal/domain"
)

// maxUploadBytes caps multipart uploads at 50 MiB.
const maxUploadBytes = 50 << 20

// CreateDocument records document metadata without a file, for the project
// named by the projectId query parameter.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		h.respondError(w, r, domain.ErrValidation("projectId query parameter is required"))
		return
	}
	var req domain.CreateDocumentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	d, err := h.documents.Create(r.Context(), principal, projectID, &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, d)
}

// UploadDocument accepts a multipart form with a "file" part plus projectId,
// title, and description fields, and stores the file in the blob store.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respondError(w, r, domain.ErrValidation("invalid multipart form: %v", err))
		return
	}

	projectID := r.FormValue("projectId")
	if projectID == "" {
		h.respondError(w, r, domain.ErrValidation("projectId form field is required"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, domain.ErrValidation("file form field is required"))
		return
	}
	defer file.Close()

	req := domain.CreateDocumentRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if req.Title == "" {
		req.Title = header.Filename
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	d, err := h.documents.Upload(r.Context(), principal, projectID, &req, header.Filename, contentType, file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, d)
}

// ListDocumentsByProject returns document metadata for the project named by
// the projectId query parameter.
func (h *Handler) ListDocumentsByProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		h.respondError(w, r, domain.ErrValidation("projectId query parameter is required"))
		return
	}
	docs, err := h.documents.ListByProject(r.Context(), principal, projectID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, docs)
}

// GetDocument returns document metadata.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	d, err := h.documents.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, d)
}

// DownloadDocument streams the stored file with its original content type
// and an attachment disposition.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	d, rc, err := h.documents.Download(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer rc.Close()

	contentType := d.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": downloadName(d),
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("document stream interrupted", "document_id", d.ID, "error", err)
	}
}

// downloadName strips the UUID prefix from the storage ref to recover the
// original file name.
func downloadName(d *domain.Document) string {
	ref := d.StorageRef
	for i := 0; i < len(ref); i++ {
		if ref[i] == '_' {
			return ref[i+1:]
		}
	}
	return fmt.Sprintf("document-%s", d.ID)
}

// UpdateDocument changes document metadata; the stored file is immutable.
func (h *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req domain.UpdateDocumentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	d, err := h.documents.Update(r.Context(), principal, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, d)
}

// DeleteDocument removes the document row and its blob.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	if err := h.documents.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
