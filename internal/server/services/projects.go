package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/projectfiles/internal/common"
	"github.com/dmitrijs2005/projectfiles/internal/dbx"
	"github.com/dmitrijs2005/projectfiles/internal/logging"
	"github.com/dmitrijs2005/projectfiles/internal/server/models"
	"github.com/dmitrijs2005/projectfiles/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const maxTitleLength = 200

// ProjectService manages the projects a user owns.
type ProjectService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewProjectService(db dbx.DBTX, m repomanager.RepositoryManager, log logging.Logger) *ProjectService {
	return &ProjectService{db: db, repomanager: m, log: log.With("service", "projects")}
}

// Create stores a new project for userID. The title is trimmed and must be
// non-empty and at most 200 characters.
func (s *ProjectService) Create(ctx context.Context, userID, title string) (*models.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	p, err := s.repomanager.Projects(s.db).Create(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	s.log.Info(ctx, "project created", "user_id", userID, "project_id", p.ID)
	return p, nil
}

// List returns the user's projects, newest first; never nil.
func (s *ProjectService) List(ctx context.Context, userID string) ([]*models.Project, error) {
	items, err := s.repomanager.Projects(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	if items == nil {
		items = []*models.Project{}
	}
	return items, nil
}

// ownedProject is the shared ownership gate: a malformed id, a missing
// project and someone else's project all come back as ErrProjectNotFound.
func ownedProject(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, projectID, userID string) (*models.Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, ErrProjectNotFound
	}

	p, err := m.Projects(db).GetOwned(ctx, projectID, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error checking project ownership: %w", err)
	}
	return p, nil
}
