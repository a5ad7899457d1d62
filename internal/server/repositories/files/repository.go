package files

import (
	"context"

	"github.com/dmitrijs2005/projectfiles/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	ListByProject(ctx context.Context, projectID, userID string) ([]*models.File, error)
	GetOwned(ctx context.Context, id, userID string) (*models.File, error)
}
