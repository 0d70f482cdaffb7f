package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/internal/session"
	"github.com/formlab/formlab/internal/status"
)

// Client is the FormLab API client used by the CLI.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client. apiKey may be empty for an open server.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListProjects returns all saved projects.
func (c *Client) ListProjects(ctx context.Context) ([]*project.Project, error) {
	var resp project.ListProjectsResponse
	if err := c.get(ctx, "/api/projects", &resp); err != nil {
		return nil, fmt.Errorf("client.ListProjects: %w", err)
	}
	return resp.Projects, nil
}

// GetProject fetches a single project by its derived id.
func (c *Client) GetProject(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	if err := c.get(ctx, "/api/projects/"+url.PathEscape(id), &p); err != nil {
		return nil, fmt.Errorf("client.GetProject: %w", err)
	}
	return &p, nil
}

// SaveProject saves a (name, fields) snapshot, overwriting any project with
// the same derived id.
func (c *Client) SaveProject(ctx context.Context, name string, fields []schema.Field) (*project.Project, error) {
	var p project.Project
	req := project.SaveProjectRequest{Name: name, Fields: fields}
	if err := c.doRequest(ctx, http.MethodPost, "/api/projects", req, &p); err != nil {
		return nil, fmt.Errorf("client.SaveProject: %w", err)
	}
	return &p, nil
}

// DeleteProject deletes a project. Unknown ids are a no-op server-side.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteProject: %w", err)
	}
	return nil
}

// FieldTypes returns the server's field type catalog.
func (c *Client) FieldTypes(ctx context.Context) ([]schema.TypeInfo, error) {
	var resp struct {
		Types []schema.TypeInfo `json:"types"`
	}
	if err := c.get(ctx, "/api/field-types", &resp); err != nil {
		return nil, fmt.Errorf("client.FieldTypes: %w", err)
	}
	return resp.Types, nil
}

// Status returns the currently active transient notices.
func (c *Client) Status(ctx context.Context) ([]status.Notice, error) {
	var resp status.StatusResponse
	if err := c.get(ctx, "/api/status", &resp); err != nil {
		return nil, fmt.Errorf("client.Status: %w", err)
	}
	return resp.Notices, nil
}

// CreateSession starts a new editing session on the server.
func (c *Client) CreateSession(ctx context.Context, name string) (*session.Session, error) {
	var sess session.Session
	req := session.CreateSessionRequest{Name: name}
	if err := c.doRequest(ctx, http.MethodPost, "/api/sessions", req, &sess); err != nil {
		return nil, fmt.Errorf("client.CreateSession: %w", err)
	}
	return &sess, nil
}

// DownloadProject fetches a generated document for a saved project. It
// returns the document text and the filename the server suggests.
func (c *Client) DownloadProject(ctx context.Context, id, kind string) (doc, filename string, err error) {
	path := fmt.Sprintf("/api/projects/%s/download/%s", url.PathEscape(id), url.PathEscape(kind))
	doc, filename, err = c.download(ctx, path)
	if err != nil {
		return "", "", fmt.Errorf("client.DownloadProject: %w", err)
	}
	return doc, filename, nil
}

func (c *Client) download(ctx context.Context, path string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", "", &HTTPError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return string(body), filename, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
