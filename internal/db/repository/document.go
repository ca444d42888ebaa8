package repository

import (
	"context"
	"database/sql"
	"time"

	"research-tracker/internal/domain"
)

const documentColumns = `id, project_id, title, description, storage_ref, content_type, uploaded_by, uploaded_at`

type DocumentRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewDocumentRepo(write, read *sql.DB) *DocumentRepo {
	return &DocumentRepo{write: write, read: read}
}

func (r *DocumentRepo) Create(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	now := time.Now().UTC()
	_, err := r.write.ExecContext(ctx,
		`INSERT INTO documents (id, project_id, title, description, storage_ref, content_type, uploaded_by, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProjectID, d.Title, d.Description, d.StorageRef, d.ContentType, d.UploadedBy, now)
	if err != nil {
		return nil, mapDBError(err)
	}
	out := *d
	out.UploadedAt = now
	return &out, nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.read.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

func (r *DocumentRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Document, error) {
	rows, err := r.read.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE project_id = ? ORDER BY uploaded_at DESC`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// ListStorageRefs returns every storage reference currently tracked. The
// orphan sweep compares this set against the blob store.
func (r *DocumentRepo) ListStorageRefs(ctx context.Context) ([]string, error) {
	rows, err := r.read.QueryContext(ctx, `SELECT storage_ref FROM documents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *DocumentRepo) Update(ctx context.Context, d *domain.Document) (*domain.Document, error) {
	res, err := r.write.ExecContext(ctx,
		`UPDATE documents SET title = ?, description = ? WHERE id = ?`,
		d.Title, d.Description, d.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("document %s not found", d.ID)
	}
	return r.GetByID(ctx, d.ID)
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("document %s not found", id)
	}
	return nil
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Description, &d.StorageRef,
		&d.ContentType, &d.UploadedBy, &d.UploadedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &d, nil
}
