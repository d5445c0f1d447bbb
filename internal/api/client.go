// Package api is the thin REST client used for the credential exchange: the
// realtime layer needs a bearer token, and this is how the CLI obtains one.
package api

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// defaultHTTPTimeout is the per-request timeout used by the API client.
const defaultHTTPTimeout = 15 * time.Second

// Client talks to the TechCrush backend REST API.
type Client struct {
	http *resty.Client
}

// NewClient creates an API client for the given base URL.
func NewClient(serverURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(serverURL).
			SetTimeout(defaultHTTPTimeout),
	}
}

// Close releases the underlying HTTP resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// envelope is the REST response envelope shared by auth endpoints.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

// Login exchanges an email/password pair for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required")
	}

	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&out).
		Post("/api/v1/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}

	if resp.IsError() {
		if out.Message != "" {
			return "", fmt.Errorf("login failed: %s", out.Message)
		}
		return "", fmt.Errorf("login failed: %s", resp.Status())
	}

	if out.Data.Token == "" {
		return "", fmt.Errorf("login response carries no token")
	}
	return out.Data.Token, nil
}
