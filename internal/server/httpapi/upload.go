package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/projectfiles/internal/filekind"
	"github.com/dmitrijs2005/projectfiles/internal/filex"
	"github.com/dmitrijs2005/projectfiles/internal/server/services"
)

const (
	projectIDField = "projectId"
	fileField      = "file"

	maxFieldSize = 4 << 10
)

// requestError is a problem with the request itself; it maps to 400.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// uploadForm is a parsed upload request. Accepted file parts live in spool
// files until cleanup is called.
type uploadForm struct {
	projectID string
	files     []services.UploadFile
	spooled   []string
	skipped   int
}

func (f *uploadForm) cleanup() {
	for _, p := range f.spooled {
		_ = os.Remove(p)
	}
	f.spooled = nil
}

// readUploadForm streams the multipart body part by part. Excluded file
// parts and parts whose name has no usable path are drained without touching
// disk; every other "file" part is
// spooled, limited to maxFileSize bytes. Only the first projectId value
// counts.
//
// On error the returned form is still non-nil and must be cleaned up.
func (s *Server) readUploadForm(ctx context.Context, r *http.Request) (*uploadForm, error) {
	form := &uploadForm{}

	mr, err := r.MultipartReader()
	if err != nil {
		return form, badRequest("Error parsing form data: %v", err)
	}

	dir, err := filex.EnsureDir(s.uploadDir)
	if err != nil {
		return form, fmt.Errorf("upload dir: %w", err)
	}

	seenProjectID := false
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return form, badRequest("Error parsing form data: %v", err)
		}

		name, filename := partNames(part)

		switch {
		case filename == "" && name == projectIDField:
			value, err := readField(part)
			if err != nil {
				return form, err
			}
			if !seenProjectID {
				form.projectID = strings.TrimSpace(value)
				seenProjectID = true
			}

		case filename != "" && name == fileField:
			if filekind.NormalizePath(filename) == "" || filekind.ShouldExclude(filename) {
				s.logger.Info(ctx, "skipping excluded file", "filename", filename)
				form.skipped++
				if err := drain(part); err != nil {
					return form, err
				}
				continue
			}
			f, err := s.spool(dir, form, part, filename)
			if err != nil {
				return form, err
			}
			form.files = append(form.files, f)

		default:
			if err := drain(part); err != nil {
				return form, err
			}
		}
	}

	return form, nil
}

func (s *Server) spool(dir string, form *uploadForm, part *multipart.Part, filename string) (services.UploadFile, error) {
	tmp, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return services.UploadFile{}, fmt.Errorf("create spool file: %w", err)
	}
	path := tmp.Name()
	form.spooled = append(form.spooled, path)

	n, copyErr := io.Copy(tmp, io.LimitReader(part, s.maxFileSize+1))
	closeErr := tmp.Close()

	if copyErr != nil {
		return services.UploadFile{}, badRequest("Error parsing form data: %v", copyErr)
	}
	if closeErr != nil {
		return services.UploadFile{}, fmt.Errorf("close spool file: %w", closeErr)
	}
	if n > s.maxFileSize {
		return services.UploadFile{}, badRequest("File %s exceeds the maximum size of %d bytes", filename, s.maxFileSize)
	}

	return services.UploadFile{
		Name: filename,
		Size: n,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// partNames returns the form name and the declared filename of a part.
// Part.FileName drops directories, so the filename is read from the raw
// Content-Disposition header to keep relative folder paths.
func partNames(part *multipart.Part) (name, filename string) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return part.FormName(), ""
	}
	return params["name"], params["filename"]
}

func readField(part *multipart.Part) (string, error) {
	b, err := io.ReadAll(io.LimitReader(part, maxFieldSize+1))
	if err != nil {
		return "", badRequest("Error parsing form data: %v", err)
	}
	if len(b) > maxFieldSize {
		return "", badRequest("Form field %s is too large", part.FormName())
	}
	return string(b), nil
}

func drain(part *multipart.Part) error {
	if _, err := io.Copy(io.Discard, part); err != nil {
		return badRequest("Error parsing form data: %v", err)
	}
	return nil
}
