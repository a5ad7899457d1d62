package projects

import (
	"context"

	"github.com/dmitrijs2005/projectfiles/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID, title string) (*models.Project, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Project, error)
	GetOwned(ctx context.Context, id, userID string) (*models.Project, error)
}
