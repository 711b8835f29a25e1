package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/yogendraft21/insight-code-sub000/token"
)

// User is the identity record returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the new-account request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is what login and register return: a fresh token pair plus
// the authenticated identity.
type AuthResponse struct {
	token.Pair
	User User `json:"user"`
}

// refreshRequest is the refresh endpoint body.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for a token pair and identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, errors.Wrap(err, "[Login]")
	}
	return &resp, nil
}

// Register creates an account and returns a token pair and identity.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", reg, &resp); err != nil {
		return nil, errors.Wrap(err, "[Register]")
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	var pair token.Pair
	if err := c.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &pair); err != nil {
		return token.Pair{}, errors.Wrap(err, "[Refresh]")
	}
	return pair, nil
}

// Logout invalidates the server-side session. Callers treat this as
// best-effort; local teardown never depends on its outcome.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
		return errors.Wrap(err, "[Logout]")
	}
	return nil
}

// Me returns the identity the presented access token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, errors.Wrap(err, "[Me]")
	}
	return &user, nil
}
