package repository

import (
	"context"
	"database/sql"
	"time"

	"research-tracker/internal/domain"
)

const projectColumns = `id, title, summary, status, pi_id, tags, start_date, end_date, created_at, updated_at`

type ProjectRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewProjectRepo(write, read *sql.DB) *ProjectRepo {
	return &ProjectRepo{write: write, read: read}
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	now := time.Now().UTC()
	_, err := r.write.ExecContext(ctx,
		`INSERT INTO projects (id, title, summary, status, pi_id, tags, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Summary, string(p.Status), p.PIID, p.Tags,
		nullTime(p.StartDate), nullTime(p.EndDate), now, now)
	if err != nil {
		return nil, mapDBError(err)
	}
	out := *p
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.read.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Project, int64, error) {
	var total int64
	if err := r.read.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.read.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}
	return projects, total, rows.Err()
}

// Update rewrites the mutable project fields and bumps updated_at. The owning
// PI and created_at are never touched.
func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	now := time.Now().UTC()
	res, err := r.write.ExecContext(ctx,
		`UPDATE projects
		 SET title = ?, summary = ?, status = ?, tags = ?, start_date = ?, end_date = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Summary, string(p.Status), p.Tags,
		nullTime(p.StartDate), nullTime(p.EndDate), now, p.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("project %s not found", p.ID)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("project %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var status string
	var start, end sql.NullTime
	err := row.Scan(&p.ID, &p.Title, &p.Summary, &status, &p.PIID, &p.Tags,
		&start, &end, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	p.Status = domain.ProjectStatus(status)
	p.StartDate = timePtr(start)
	p.EndDate = timePtr(end)
	return &p, nil
}
