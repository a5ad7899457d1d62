// Package api is the HTTP client the CLI uses to talk to the projectfiles
// server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/dmitrijs2005/projectfiles/internal/common"
)

const defaultRetryDelay = 300 * time.Millisecond

// Client calls the projectfiles HTTP API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	http       *http.Client
	attempts   uint
	retryDelay time.Duration
}

func NewClient(baseURL, token string, timeout time.Duration, attempts uint) *Client {
	if attempts == 0 {
		attempts = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		http:       &http.Client{Timeout: timeout},
		attempts:   attempts,
		retryDelay: defaultRetryDelay,
	}
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var resp []Project
	err := c.doRetry(ctx, http.MethodGet, "/api/projects/list", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateProject(ctx context.Context, title string) (Project, error) {
	var resp Project
	err := c.do(ctx, http.MethodPost, "/api/projects", nil, map[string]string{"title": title}, &resp)
	return resp, err
}

func (c *Client) ListFiles(ctx context.Context, projectID string) ([]File, error) {
	var resp []File
	err := c.doRetry(ctx, http.MethodGet, "/api/files/list", url.Values{"projectId": {projectID}}, nil, &resp)
	return resp, err
}

// ParseFile fetches a stored file as text. The call has no side effects on
// the server, so it is retried like the listings.
func (c *Client) ParseFile(ctx context.Context, fileID string) (ParsedFile, error) {
	var resp parseResponse
	err := c.doRetry(ctx, http.MethodPost, "/api/files/"+url.PathEscape(fileID)+"/parse", nil, nil, &resp)
	return resp.File, err
}

func (c *Client) doRetry(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	return retry.Do(
		func() error {
			return c.do(ctx, method, path, query, body, out)
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.MaxJitter(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTemporary),
		retry.Context(ctx),
	)
}

func isTemporary(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}
	return &APIError{Status: resp.StatusCode}
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.token == "" {
		return
	}
	req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+c.token)
}
