package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
)

// Upload sends files to a project in one multipart request. The body is
// streamed, so nothing is buffered in memory beyond a copy buffer.
func (c *Client) Upload(ctx context.Context, projectID string, files []LocalFile) (UploadResult, error) {
	var resp UploadResult

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadBody(mw, projectID, files))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", pr)
	if err != nil {
		pr.CloseWithError(err)
		return resp, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeader(req)

	httpResp, err := c.http.Do(req)
	if err != nil {
		pr.CloseWithError(err)
		return resp, err
	}
	defer httpResp.Body.Close()

	err = decodeResponse(httpResp, &resp)
	pr.CloseWithError(io.ErrClosedPipe)
	return resp, err
}

func writeUploadBody(mw *multipart.Writer, projectID string, files []LocalFile) error {
	if err := mw.WriteField("projectId", projectID); err != nil {
		return err
	}
	for _, f := range files {
		if err := writeFilePart(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

// writeFilePart sends f under its relative name; the server keeps the
// directories, so "src/main.go" is stored as such.
func writeFilePart(mw *multipart.Writer, f LocalFile) error {
	w, err := mw.CreateFormFile("file", f.Name)
	if err != nil {
		return err
	}

	src, err := os.Open(f.Path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}
