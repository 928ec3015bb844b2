package client

import (
	"context"
	"net/http"

	"github.com/oksasatya/heart-api/internal/domain/entity"
	"github.com/oksasatya/heart-api/pkg/client/store"
)

type authData struct {
	User  store.User `json:"user"`
	Token string     `json:"token"`
}

// Signup creates the account and signs in.
func (c *Client) Signup(ctx context.Context, identifier, password, confirm string) (*store.User, error) {
	return c.authenticate(ctx, "/api/auth/signup", map[string]string{
		"email":           identifier,
		"password":        password,
		"confirmPassword": confirm,
	})
}

func (c *Client) Login(ctx context.Context, identifier, password string) (*store.User, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    identifier,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (*store.User, error) {
	var data authData
	if _, err := c.do(ctx, http.MethodPost, path, body, &data); err != nil {
		return nil, err
	}
	if err := c.Session.Set(data.User, data.Token); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Logout tells the server and drops the local session either way.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if cerr := c.Session.Clear(); err == nil {
		err = cerr
	}
	return err
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*store.User, error) {
	var data struct {
		User entity.User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &data); err != nil {
		return nil, err
	}
	return &store.User{ID: data.User.ID, Email: data.User.Email, CreatedAt: data.User.CreatedAt}, nil
}
