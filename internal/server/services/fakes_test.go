package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/projectfiles/internal/common"
	"github.com/dmitrijs2005/projectfiles/internal/dbx"
	"github.com/dmitrijs2005/projectfiles/internal/server/blobstore"
	"github.com/dmitrijs2005/projectfiles/internal/server/models"
	filesrepo "github.com/dmitrijs2005/projectfiles/internal/server/repositories/files"
	projectsrepo "github.com/dmitrijs2005/projectfiles/internal/server/repositories/projects"
)

const (
	ownerID   = "7d0c6b3a-1f2e-4c5d-8e9f-0a1b2c3d4e5f"
	otherID   = "11111111-2222-4333-8444-555555555555"
	projectID = "5b0f8c1e-7a7c-4b1e-9a39-2c3f1d6e8a10"
	fileID    = "9e8d7c6b-5a49-4382-9170-6f5e4d3c2b1a"
)

type fakeProjectsRepo struct {
	projects  []*models.Project
	createErr error
	listErr   error
	getErr    error
}

func (f *fakeProjectsRepo) Create(_ context.Context, userID, title string) (*models.Project, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := &models.Project{ID: projectID, UserID: userID, Title: title, CreatedAt: time.Now()}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeProjectsRepo) ListByUser(_ context.Context, userID string) ([]*models.Project, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectsRepo) GetOwned(_ context.Context, id, userID string) (*models.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.projects {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeFilesRepo struct {
	files     []*models.File
	createErr map[string]error
	listErr   error
	getErr    error
}

func (f *fakeFilesRepo) Create(_ context.Context, file *models.File) (*models.File, error) {
	if err := f.createErr[file.Filename]; err != nil {
		return nil, err
	}
	rec := *file
	rec.ID = "f-" + file.Filename
	rec.CreatedAt = time.Now()
	f.files = append(f.files, &rec)
	return &rec, nil
}

func (f *fakeFilesRepo) ListByProject(_ context.Context, projectID, userID string) ([]*models.File, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.File
	for i := len(f.files) - 1; i >= 0; i-- {
		if f.files[i].ProjectID == projectID && f.files[i].UserID == userID {
			out = append(out, f.files[i])
		}
	}
	return out, nil
}

func (f *fakeFilesRepo) GetOwned(_ context.Context, id, userID string) (*models.File, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, file := range f.files {
		if file.ID == id && file.UserID == userID {
			return file, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	p *fakeProjectsRepo
	f *fakeFilesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Projects(db dbx.DBTX) projectsrepo.Repository { return m.p }
func (m *fakeRepoManager) Files(db dbx.DBTX) filesrepo.Repository       { return m.f }

// fakeStore keeps blobs in memory under a fixed base URL.
type fakeStore struct {
	locator blobstore.Locator
	blobs   map[string][]byte
	types   map[string]string
	putErr  map[string]error
	getErr  error
	puts    []string
	gets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		locator: blobstore.NewLocator("http://blob.test/project-files"),
		blobs:   map[string][]byte{},
		types:   map[string]string{},
		putErr:  map[string]error{},
	}
}

func (s *fakeStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.puts = append(s.puts, name)
	if err := s.putErr[name]; err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if int64(len(data)) != size {
		return "", errors.New("size mismatch")
	}
	s.blobs[name] = data
	s.types[name] = contentType
	return s.locator.URL(name), nil
}

func (s *fakeStore) Get(_ context.Context, blobURL string) ([]byte, error) {
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	name, err := s.locator.Name(blobURL)
	if err != nil {
		return nil, err
	}
	data, ok := s.blobs[name]
	if !ok {
		return nil, errors.New("BlobNotFound")
	}
	return data, nil
}

func (s *fakeStore) Name(blobURL string) (string, error) {
	return s.locator.Name(blobURL)
}

func memFile(name, body string) UploadFile {
	return UploadFile{
		Name: name,
		Size: int64(len(body)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(body)), nil },
	}
}
