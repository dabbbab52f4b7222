package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Service defines the operations the rosterd users API offers.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	CreateUser(ctx context.Context, draft Draft) (User, error)
	UpdateUser(ctx context.Context, id int64, draft Draft) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// ErrNotFound reports that the requested user id does not exist on the
// server. Callers can detect it with errors.Is.
var ErrNotFound = errors.New("user not found")

// Client talks to the rosterd HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8321"
	defaultUserAgent = "roster/0.1"
	requestTimeout   = 5 * time.Second

	usersPath = "/api/users"
)

// NewClient builds a Client from the provided base address. The address may
// be a bare host:port or a full URL; paths, queries, and fragments are
// stripped.
func NewClient(base string) (*Client, error) {
	parsed, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListUsers retrieves the full users collection.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []User
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetUser retrieves a single user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (User, error) {
	if c == nil {
		return User{}, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// CreateUser submits a draft and returns the record the server created,
// including its assigned id.
func (c *Client) CreateUser(ctx context.Context, draft Draft) (User, error) {
	if c == nil {
		return User{}, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.do(ctx, http.MethodPost, usersPath, &draft, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// UpdateUser replaces the editable fields of an existing user and returns
// the server's updated record.
func (c *Client) UpdateUser(ctx context.Context, id int64, draft Draft) (User, error) {
	if c == nil {
		return User{}, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.do(ctx, http.MethodPut, userPath(id), &draft, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// DeleteUser removes a user by id. A successful delete has no payload.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func userPath(id int64) string {
	return usersPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Failure bodies are not inspected; the status code is the whole story.
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("api %s %s: %w", method, rel.Path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api %s %s returned status %d", method, rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
