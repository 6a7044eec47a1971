package api

import (
	"context"
	"fmt"
	"strings"
)

// Login exchanges email and password for a session token. The client's own
// token is not changed; callers decide whether to keep the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	var resp AuthResponse
	if err := c.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("failed to log in: response carried no token")
	}
	return &resp, nil
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, email, password, username string) (*AuthResponse, error) {
	req := RegisterRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
		Username: strings.TrimSpace(username),
	}
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	var resp AuthResponse
	if err := c.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("failed to register: response carried no token")
	}
	return &resp, nil
}
