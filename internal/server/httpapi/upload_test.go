package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/projectfiles/internal/server/models"
	"github.com/dmitrijs2005/projectfiles/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeUpload(t *testing.T, body []byte) (uploadResponse, map[string]json.RawMessage) {
	t.Helper()
	var resp uploadResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	return resp, raw
}

func TestUpload_Success(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "file", filename: "src/app/main.go", body: "package main"},
		formPart{field: "file", filename: "README.md", body: "# hi"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	call := env.files.upload
	require.NotNil(t, call)
	assert.Equal(t, testUserID, call.userID)
	assert.Equal(t, testProjectID, call.projectID)
	assert.Equal(t, []string{"src/app/main.go", "README.md"}, call.names)
	assert.Equal(t, "package main", call.contents["src/app/main.go"])
	assert.Equal(t, int64(len("package main")), call.sizes["src/app/main.go"])

	resp, raw := decodeUpload(t, rec.Body.Bytes())
	assert.True(t, resp.Success)
	require.Len(t, resp.Files, 2)
	assert.Equal(t, "src/app/main.go", resp.Files[0].Filename)
	assert.Equal(t, testProjectID, resp.Files[0].ProjectID)
	_, hasErrors := raw["errors"]
	assert.False(t, hasErrors, "errors key must be absent when nothing failed")
}

func TestUpload_ExcludedPartsNeverReachService(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "file", filename: "node_modules/lodash/index.js", body: "x"},
		formPart{field: "file", filename: "assets/logo.PNG", body: "\x89PNG"},
		formPart{field: "file", filename: ".DS_Store", body: "junk"},
		formPart{field: "file", filename: "src/index.ts", body: "export {}"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"src/index.ts"}, env.files.upload.names)
}

func TestUpload_IgnoresUnknownParts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "comment", body: "hello"},
		formPart{field: "attachment", filename: "notes.txt", body: "not a file field"},
		formPart{field: "file", filename: "a.txt", body: "a"},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a.txt"}, env.files.upload.names)
}

func TestUpload_FirstProjectIDWins(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: " " + testProjectID + " "},
		formPart{field: "projectId", body: "other"},
		formPart{field: "file", filename: "a.txt", body: "a"},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testProjectID, env.files.upload.projectID)
}

func TestUpload_MissingProjectID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t, formPart{field: "file", filename: "a.txt", body: "a"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Project ID is required", errorBody(t, rec))
}

func TestUpload_NotMultipart(t *testing.T) {
	env := newTestEnv(t)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/files/upload", strings.NewReader(`{"projectId":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := env.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "Error parsing form data")
	assert.Nil(t, env.files.upload)
}

func TestUpload_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/files/upload", strings.NewReader("--xyz\r\nbroken")))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	rec := env.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, env.files.upload)
}

func TestUpload_FileTooLarge(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "file", filename: "big.txt", body: strings.Repeat("x", int(env.cfg.MaxFileSize)+1)},
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "big.txt")
	assert.Nil(t, env.files.upload)
}

func TestUpload_FileAtLimitAccepted(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "file", filename: "edge.txt", body: strings.Repeat("x", int(env.cfg.MaxFileSize))},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, env.cfg.MaxFileSize, env.files.upload.sizes["edge.txt"])
}

func TestUpload_SpoolFilesRemoved(t *testing.T) {
	tests := []struct {
		name  string
		parts []formPart
		code  int
	}{
		{
			name: "success",
			parts: []formPart{
				{field: "projectId", body: testProjectID},
				{field: "file", filename: "a.txt", body: "a"},
				{field: "file", filename: "b.txt", body: "b"},
			},
			code: http.StatusOK,
		},
		{
			name: "oversize after an accepted part",
			parts: []formPart{
				{field: "projectId", body: testProjectID},
				{field: "file", filename: "a.txt", body: "a"},
				{field: "file", filename: "big.txt", body: strings.Repeat("x", 2<<10)},
			},
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(uploadRequest(t, tt.parts...))
			require.Equal(t, tt.code, rec.Code)

			entries, err := os.ReadDir(env.cfg.UploadDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestUpload_PartialFailureReported(t *testing.T) {
	env := newTestEnv(t)
	env.files.uploadRes = &services.UploadResult{
		Files: []*models.File{
			{ID: "1", ProjectID: testProjectID, Filename: "a.txt"},
			{ID: "3", ProjectID: testProjectID, Filename: "c.txt"},
		},
		Errors: []services.UploadError{{File: "b.txt", Error: "blob store unavailable"}},
	}

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "file", filename: "a.txt", body: "a"},
		formPart{field: "file", filename: "b.txt", body: "b"},
		formPart{field: "file", filename: "c.txt", body: "c"},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	resp, _ := decodeUpload(t, rec.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Len(t, resp.Files, 2)
	assert.Equal(t, []services.UploadError{{File: "b.txt", Error: "blob store unavailable"}}, resp.Errors)
}

func TestUpload_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"project not owned", services.ErrProjectNotFound, http.StatusForbidden, "Project not found or access denied"},
		{"backend failure", errors.New("connection refused"), http.StatusInternalServerError, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.files.uploadErr = tt.err

			rec := env.do(uploadRequest(t,
				formPart{field: "projectId", body: testProjectID},
				formPart{field: "file", filename: "a.txt", body: "a"},
			))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.msg, errorBody(t, rec))
		})
	}
}

func TestUpload_BackslashPathKept(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "file", filename: `lib\util\strings.js`, body: "x"},
	))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{`lib\util\strings.js`}, env.files.upload.names)
}

func TestUpload_UnusableNamesSkipped(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(uploadRequest(t,
		formPart{field: "projectId", body: testProjectID},
		formPart{field: "file", filename: "/", body: "root"},
		formPart{field: "file", filename: "//", body: "root"},
		formPart{field: "file", filename: "../escape.txt", body: "up"},
		formPart{field: "file", filename: "main.go", body: "package main"},
	))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"main.go"}, env.files.upload.names)
}
