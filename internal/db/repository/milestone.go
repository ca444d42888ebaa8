package repository

import (
	"context"
	"database/sql"
	"time"

	"research-tracker/internal/domain"
)

const milestoneColumns = `id, project_id, title, description, due_date, completed, created_by, created_at`

type MilestoneRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewMilestoneRepo(write, read *sql.DB) *MilestoneRepo {
	return &MilestoneRepo{write: write, read: read}
}

func (r *MilestoneRepo) Create(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error) {
	now := time.Now().UTC()
	_, err := r.write.ExecContext(ctx,
		`INSERT INTO milestones (id, project_id, title, description, due_date, completed, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProjectID, m.Title, m.Description, nullTime(m.DueDate), m.Completed, m.CreatedBy, now)
	if err != nil {
		return nil, mapDBError(err)
	}
	out := *m
	out.CreatedAt = now
	return &out, nil
}

func (r *MilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	row := r.read.QueryRowContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE id = ?`, id)
	return scanMilestone(row)
}

func (r *MilestoneRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	rows, err := r.read.QueryContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones
		 WHERE project_id = ?
		 ORDER BY due_date IS NULL, due_date, created_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, *m)
	}
	return milestones, rows.Err()
}

func (r *MilestoneRepo) Update(ctx context.Context, m *domain.Milestone) (*domain.Milestone, error) {
	res, err := r.write.ExecContext(ctx,
		`UPDATE milestones SET title = ?, description = ?, due_date = ?, completed = ? WHERE id = ?`,
		m.Title, m.Description, nullTime(m.DueDate), m.Completed, m.ID)
	if err != nil {
		return nil, mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("milestone %s not found", m.ID)
	}
	return r.GetByID(ctx, m.ID)
}

func (r *MilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.write.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("milestone %s not found", id)
	}
	return nil
}

func scanMilestone(row rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var due sql.NullTime
	err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Description, &due,
		&m.Completed, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	m.DueDate = timePtr(due)
	return &m, nil
}
