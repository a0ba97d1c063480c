// Package api implements the REST client for the CarCare backend. The
// dashboard never talks to the database at runtime; every read and write
// goes through this client with the session's bearer token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carcarepro/carcare-ui/internal/core"
	"github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
)

// Client satisfies every backend port.
var _ core.BackendAPI = (*Client)(nil)

const maxErrorBodyBytes = 4 * 1024

// Config captures the backend connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client is the concrete backend REST client. It implements core.BackendAPI.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a backend client. Callers should pass a sanitized config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: baseURL,
		client:  hc,
	}, nil
}

// Error is a non-2xx backend response. Detail carries the backend's own
// message and is shown to the user verbatim where the page calls for it.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// IsStatus reports whether err is a backend Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Detail returns the backend detail message from err, or "" when err is
// not a backend Error.
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// loginResponse is the backend token grant.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", payload, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("login response missing access token")
	}
	return out.AccessToken, nil
}

// LoginWithGoogle exchanges a verified Google identity for a bearer token.
func (c *Client) LoginWithGoogle(ctx context.Context, params core.GoogleLoginParams) (string, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/google", "", params, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("login response missing access token")
	}
	return out.AccessToken, nil
}

// Profile fetches the account behind the bearer token.
func (c *Client) Profile(ctx context.Context, token string) (*auth.Profile, error) {
	var out auth.Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns every registered account.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// registerResponse is the backend acknowledgement for a created account.
type registerResponse struct {
	Message string `json:"message"`
}

// RegisterUser creates a new account. The backend acknowledges with a
// message rather than the created record, so the returned user is built
// from the request.
func (c *Client) RegisterUser(
	ctx context.Context,
	token string,
	req model.CreateUserRequest,
) (*model.User, error) {
	var out registerResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/admin/register", token, req, &out); err != nil {
		return nil, err
	}
	return &model.User{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		EmailVerified: req.EmailVerified,
	}, nil
}

// TestEmailConfig asks the backend to verify its SMTP configuration.
func (c *Client) TestEmailConfig(ctx context.Context, token string) (*model.EmailConfigResult, error) {
	var out model.EmailConfigResult
	if err := c.do(ctx, http.MethodGet, "/api/auth/admin/test-email", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status returns the current vehicle snapshot.
func (c *Client) Status(ctx context.Context, token string) (*model.Snapshot, error) {
	var out model.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/maintenance/status", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one backend request and decodes the JSON response into out.
// A non-2xx status decodes the backend's {"detail": ...} body into *Error.
func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError extracts the backend's detail message from an error body.
// Bodies that are not the expected JSON shape degrade to the raw text.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var parsed struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(raw, &parsed); err == nil {
		detail = parsed.Detail
	}
	if detail == "" {
		detail = strings.TrimSpace(string(raw))
	}

	return &Error{StatusCode: resp.StatusCode, Detail: detail}
}
