// Package api is a typed client for the shopkeeper HTTP API. Every reply is
// the {success, message, data} envelope; unsuccessful replies surface as
// *Error carrying the HTTP status and the server's message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable wraps transport failures (connection refused, timeouts).
var ErrUnavailable = errors.New("server unavailable")

// Error is a non-success reply from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// IsUnauthorized reports whether err is a 401 reply.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type User struct {
	ID       int64  `json:"userId"`
	UserName string `json:"username"`
}

type Session struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"username"`
	Token    string `json:"token"`
}

type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type ProductList struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
	// User is the identity the server resolved from the token.
	User *User `json:"-"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	User    *User           `json:"user"`
}

type credentials struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New returns a client for the server at baseURL, e.g. "http://127.0.0.1:3000".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of c that sends the bearer token on every request.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) Register(ctx context.Context, userName, password string) (*User, error) {
	var u User
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{userName, password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, userName, password string) (*Session, error) {
	var s Session
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{userName, password}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Products(ctx context.Context) (*ProductList, error) {
	var list ProductList
	env, err := c.do(ctx, http.MethodGet, "/api/products", nil, &list)
	if err != nil {
		return nil, err
	}
	list.User = env.User
	return &list, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if _, err := c.do(ctx, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if _, err := c.do(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// do sends one request and decodes the envelope; data is unmarshalled into
// out when the reply is successful.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return &env, nil
}
