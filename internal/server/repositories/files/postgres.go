// Package files stores uploaded file metadata in PostgreSQL.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projectfiles/internal/common"
	"github.com/dmitrijs2005/projectfiles/internal/dbx"
	"github.com/dmitrijs2005/projectfiles/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file record. Id and created_at are assigned by the
// database and returned in the result.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {
	query := `INSERT INTO files (project_id, user_id, filename, blob_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, user_id, filename, blob_url, created_at`

	res := &models.File{}
	err := r.db.QueryRowContext(ctx, query, file.ProjectID, file.UserID, file.Filename, file.BlobURL).
		Scan(&res.ID, &res.ProjectID, &res.UserID, &res.Filename, &res.BlobURL, &res.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

// ListByProject returns the user's files in a project, newest first. The
// result is empty, not nil, when there are none.
func (r *PostgresRepository) ListByProject(ctx context.Context, projectID, userID string) ([]*models.File, error) {
	query := `SELECT id, project_id, user_id, filename, blob_url, created_at FROM files
		WHERE project_id=$1 AND user_id=$2
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.File, 0)
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.UserID, &item.Filename, &item.BlobURL, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetOwned looks a file up by id and owner in one query, so a missing file
// and someone else's file are indistinguishable (common.ErrorNotFound).
func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*models.File, error) {
	query := `SELECT id, project_id, user_id, filename, blob_url, created_at FROM files
		WHERE id=$1 AND user_id=$2`

	res := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&res.ID, &res.ProjectID, &res.UserID, &res.Filename, &res.BlobURL, &res.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	return res, nil
}
