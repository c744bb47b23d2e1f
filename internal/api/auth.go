package api

import (
	"context"
	"net/http"

	"github.com/avmoreira/despensa-web/internal/model"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. The server rejects duplicate emails and
// usernames with a detail message.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, in LoginInput) (*model.Token, error) {
	var t model.Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CurrentUser fetches the profile for the bearer token on the context.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
