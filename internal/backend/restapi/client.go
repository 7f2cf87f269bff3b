// Package restapi implements the service.Service interface against the
// task REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskman/internal/config"
	"taskman/internal/service"
)

const (
	tokenPath    = "/token/"
	refreshPath  = "/token/refresh/"
	registerPath = "/register/"
	tasksPath    = "/tasks/"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a client for the API configured in cfg.
func New(cfg *config.Config, log *zap.Logger) *Client {
	return NewWithHTTPClient(cfg.APIBaseURL, &http.Client{}, log)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// ObtainToken exchanges credentials for a token pair.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (service.TokenPair, error) {
	body := map[string]string{"username": username, "password": password}

	var pair service.TokenPair
	if err := c.do(ctx, c.httpClient, http.MethodPost, tokenPath, body, &pair); err != nil {
		return service.TokenPair{}, err
	}
	if pair.Access == "" {
		return service.TokenPair{}, fmt.Errorf("%w: token response has no access token", service.ErrContract)
	}
	return pair, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	body := map[string]string{"refresh": refresh}

	var resp struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, c.httpClient, http.MethodPost, refreshPath, body, &resp); err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", fmt.Errorf("%w: refresh response has no access token", service.ErrContract)
	}
	return resp.Access, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg service.Registration) error {
	return c.do(ctx, c.httpClient, http.MethodPost, registerPath, reg, nil)
}

// ListTasks returns one page of the caller's tasks.
func (c *Client) ListTasks(ctx context.Context, accessToken string, page int) (service.Page, error) {
	path := tasksPath
	if page > 1 {
		path += "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
	}

	var raw json.RawMessage
	if err := c.do(ctx, c.bearer(ctx, accessToken), http.MethodGet, path, nil, &raw); err != nil {
		return service.Page{}, err
	}
	return decodePage(raw)
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, accessToken string, id int64) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, c.bearer(ctx, accessToken), http.MethodGet, taskPath(id), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, accessToken string, draft service.TaskDraft) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, c.bearer(ctx, accessToken), http.MethodPost, tasksPath, draft, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces a task's editable fields.
func (c *Client) UpdateTask(ctx context.Context, accessToken string, id int64, draft service.TaskDraft) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, c.bearer(ctx, accessToken), http.MethodPut, taskPath(id), draft, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, accessToken string, id int64) error {
	return c.do(ctx, c.bearer(ctx, accessToken), http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id int64) string {
	return tasksPath + strconv.FormatInt(id, 10) + "/"
}

// bearer returns an HTTP client that sends accessToken as a bearer token.
func (c *Client) bearer(ctx context.Context, accessToken string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	return oauth2.NewClient(ctx, src)
}

// do sends a JSON request and decodes a JSON response into out.
// out may be nil when the body is not needed.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
	log.Debug("api request")

	res, err := hc.Do(req)
	if err != nil {
		log.Debug("api transport failure", zap.Error(err))
		return fmt.Errorf("%w: %v", service.ErrTransport, err)
	}
	defer res.Body.Close()

	log.Debug("api response", zap.Int("status", res.StatusCode))

	if err := googleapi.CheckResponse(res); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return parseError(gerr.Code, []byte(gerr.Body))
		}
		return fmt.Errorf("%w: %v", service.ErrTransport, err)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		log.Debug("api decode failure", zap.Error(err))
		return fmt.Errorf("%w: decode response: %v", service.ErrTransport, err)
	}
	return nil
}

// decodePage checks the paginated envelope before trusting it.
func decodePage(raw json.RawMessage) (service.Page, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return service.Page{}, fmt.Errorf("%w: task list is not a paginated object", service.ErrContract)
	}
	results, ok := fields["results"]
	if !ok {
		return service.Page{}, fmt.Errorf("%w: task list has no results", service.ErrContract)
	}
	results = bytes.TrimSpace(results)
	if len(results) == 0 || results[0] != '[' {
		return service.Page{}, fmt.Errorf("%w: task list results is not an array", service.ErrContract)
	}

	var page service.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return service.Page{}, fmt.Errorf("%w: %v", service.ErrContract, err)
	}
	return page, nil
}
