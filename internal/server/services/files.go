package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/projectfiles/internal/common"
	"github.com/dmitrijs2005/projectfiles/internal/dbx"
	"github.com/dmitrijs2005/projectfiles/internal/filekind"
	"github.com/dmitrijs2005/projectfiles/internal/logging"
	"github.com/dmitrijs2005/projectfiles/internal/server/blobstore"
	"github.com/dmitrijs2005/projectfiles/internal/server/models"
	"github.com/dmitrijs2005/projectfiles/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UploadFile is one accepted file part of an upload request. Open may be
// called once.
type UploadFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// UploadError reports why one file of a batch was not stored.
type UploadError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// UploadResult holds what a batch produced. Errors is nil when every file
// was stored.
type UploadResult struct {
	Files  []*models.File
	Errors []UploadError
}

// ParsedFile is a stored file decoded as text.
type ParsedFile struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	ProjectID string `json:"project_id"`
}

// FileService runs the upload pipeline and serves file contents as text.
type FileService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	store       blobstore.ObjectStore
	log         logging.Logger
}

func NewFileService(db dbx.DBTX, m repomanager.RepositoryManager, store blobstore.ObjectStore, log logging.Logger) *FileService {
	return &FileService{db: db, repomanager: m, store: store, log: log.With("service", "files")}
}

// Upload stores files into a project the user owns.
//
// Files are processed one at a time. A blob or metadata failure is recorded
// in UploadResult.Errors and the next file is tried; only the project checks
// fail the whole call. Excluded paths and parts without a usable name are
// skipped without an error entry. Once processing starts, cancellation of
// ctx no longer interrupts a file in flight.
func (s *FileService) Upload(ctx context.Context, userID, projectID string, files []UploadFile) (*UploadResult, error) {
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}
	if _, err := ownedProject(ctx, s.repomanager, s.db, projectID, userID); err != nil {
		return nil, err
	}

	log := s.log.With("user_id", userID, "project_id", projectID)
	log.Info(ctx, "upload started", "files", len(files))

	fileCtx := context.WithoutCancel(ctx)
	repo := s.repomanager.Files(s.db)

	res := &UploadResult{Files: make([]*models.File, 0, len(files))}
	for _, f := range files {
		name := filekind.NormalizePath(f.Name)
		if name == "" {
			log.Warn(ctx, "skipping part without filename")
			continue
		}
		if filekind.ShouldExclude(name) {
			log.Debug(ctx, "skipping excluded file", "filename", name)
			continue
		}

		rec, err := s.storeOne(fileCtx, repo, userID, projectID, name, f)
		if err != nil {
			log.Error(ctx, "file upload failed", "filename", name, "error", err)
			res.Errors = append(res.Errors, UploadError{File: name, Error: err.Error()})
			continue
		}
		res.Files = append(res.Files, rec)
	}

	log.Info(ctx, "upload finished", "stored", len(res.Files), "failed", len(res.Errors))
	return res, nil
}

type fileCreator interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
}

func (s *FileService) storeOne(ctx context.Context, repo fileCreator, userID, projectID, name string, f UploadFile) (*models.File, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	blobURL, err := s.store.Put(ctx, filekind.BlobName(projectID, name), rc, f.Size, filekind.ContentType(name))
	if err != nil {
		return nil, err
	}

	return repo.Create(ctx, &models.File{
		ProjectID: projectID,
		UserID:    userID,
		Filename:  name,
		BlobURL:   blobURL,
	})
}

// Parse downloads a file the user owns and returns it as UTF-8 text.
// Binary extensions are refused before anything is downloaded.
func (s *FileService) Parse(ctx context.Context, userID, fileID string) (*ParsedFile, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, ErrFileNotFound
	}

	f, err := s.repomanager.Files(s.db).GetOwned(ctx, fileID, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching file: %w", err)
	}

	name, err := s.store.Name(f.BlobURL)
	if err != nil {
		return nil, err
	}
	if filekind.IsBinary(name) {
		return nil, ErrBinaryFile
	}

	data, err := s.store.Get(ctx, f.BlobURL)
	if err != nil {
		return nil, err
	}

	return &ParsedFile{
		ID:        f.ID,
		Filename:  f.Filename,
		Content:   strings.ToValidUTF8(string(data), "�"),
		ProjectID: f.ProjectID,
	}, nil
}

// List returns the files of a project the user owns, newest first; never nil.
func (s *FileService) List(ctx context.Context, userID, projectID string) ([]*models.File, error) {
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}
	if _, err := ownedProject(ctx, s.repomanager, s.db, projectID, userID); err != nil {
		return nil, err
	}

	items, err := s.repomanager.Files(s.db).ListByProject(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	if items == nil {
		items = []*models.File{}
	}
	return items, nil
}
