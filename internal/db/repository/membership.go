package repository

import (
	"context"
	"database/sql"

	"research-tracker/internal/domain"
)

type MembershipRepo struct {
	write *sql.DB
	read  *sql.DB
}

func NewMembershipRepo(write, read *sql.DB) *MembershipRepo {
	return &MembershipRepo{write: write, read: read}
}

// Add inserts the pair if absent. Adding an existing member is a no-op, so
// concurrent adds of the same pair converge on a single row.
func (r *MembershipRepo) Add(ctx context.Context, projectID, userID string) error {
	_, err := r.write.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_members (project_id, user_id) VALUES (?, ?)`,
		projectID, userID)
	return mapDBError(err)
}

// Remove deletes the pair if present. Removing a non-member is a no-op.
func (r *MembershipRepo) Remove(ctx context.Context, projectID, userID string) error {
	_, err := r.write.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID)
	return mapDBError(err)
}

func (r *MembershipRepo) ListMembers(ctx context.Context, projectID string) ([]domain.User, error) {
	rows, err := r.read.QueryContext(ctx,
		`SELECT u.id, u.username, u.password_hash, u.full_name, u.role, u.created_at
		 FROM project_members pm
		 JOIN users u ON u.id = pm.user_id
		 WHERE pm.project_id = ?
		 ORDER BY u.username`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *MembershipRepo) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	var exists bool
	err := r.read.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM project_members WHERE project_id = ? AND user_id = ?)`,
		projectID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
