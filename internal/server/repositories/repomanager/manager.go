package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/projectfiles/internal/dbx"
	"github.com/dmitrijs2005/projectfiles/internal/server/repositories/files"
	"github.com/dmitrijs2005/projectfiles/internal/server/repositories/projects"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Projects(db dbx.DBTX) projects.Repository
	Files(db dbx.DBTX) files.Repository
}
