package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx response from the tracker API.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.HTTPStatus, e.Message)
}

// Client is a thin HTTP client for the tracker API. BaseURL and Token are
// mutable so the root command can fill them in after config resolution.
type Client struct {
	BaseURL string
	Token   string

	httpClient *http.Client
}

// NewClient creates a client for the given host.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends a JSON request and decodes a JSON response into out (skipped when
// out is nil). Error bodies in the {"code","message"} envelope become APIError.
func (c *Client) do(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// listEnvelope mirrors the API's paginated list responses.
type listEnvelope[T any] struct {
	Items         []T    `json:"items"`
	TotalCount    int64  `json:"totalCount"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type projectView struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
	PI     *userView `json:"pi,omitempty"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me returns the authenticated user's own record.
func (c *Client) Me() (*userView, error) {
	var u userView
	if err := c.do(http.MethodGet, "/api/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers lists all users (admin only).
func (c *Client) ListUsers() (listEnvelope[userView], error) {
	var out listEnvelope[userView]
	err := c.do(http.MethodGet, "/api/users/", nil, &out)
	return out, err
}

// ListUsersByRole lists users holding the given role.
func (c *Client) ListUsersByRole(role string) (listEnvelope[userView], error) {
	var out listEnvelope[userView]
	err := c.do(http.MethodGet, "/api/users/role/"+role, nil, &out)
	return out, err
}

// ListProjects lists all projects.
func (c *Client) ListProjects() (listEnvelope[projectView], error) {
	var out listEnvelope[projectView]
	err := c.do(http.MethodGet, "/api/projects/", nil, &out)
	return out, err
}

// ListMembers lists members of a project.
func (c *Client) ListMembers(projectID string) ([]userView, error) {
	var out []userView
	err := c.do(http.MethodGet, "/api/projects/"+projectID+"/members", nil, &out)
	return out, err
}
