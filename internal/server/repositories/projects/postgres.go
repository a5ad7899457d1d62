// Package projects stores project records in PostgreSQL.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projectfiles/internal/common"
	"github.com/dmitrijs2005/projectfiles/internal/dbx"
	"github.com/dmitrijs2005/projectfiles/internal/server/models"
)

// PostgresRepository implements project storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a project and returns it with the server-assigned id and
// creation time.
func (r *PostgresRepository) Create(ctx context.Context, userID, title string) (*models.Project, error) {
	query := `INSERT INTO projects (user_id, title) VALUES ($1, $2)
		RETURNING id, user_id, title, created_at`

	p := &models.Project{}
	if err := r.db.QueryRowContext(ctx, query, userID, title).Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	return p, nil
}

// ListByUser returns the user's projects, newest first. The result is empty,
// not nil, when the user has none.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	query := `SELECT id, user_id, title, created_at FROM projects
		WHERE user_id=$1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		var item models.Project
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetOwned returns the project only when it belongs to userID; otherwise
// common.ErrorNotFound.
func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*models.Project, error) {
	query := `SELECT id, user_id, title, created_at FROM projects
		WHERE id=$1 AND user_id=$2`

	p := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select project: %w", err)
	}
	return p, nil
}
