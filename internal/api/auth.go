package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/saadjs/nutri-cli/internal/model"
)

// Login exchanges email and password for a bearer token. It does not store
// the token; that is the session owner's job.
func (c *Client) Login(ctx context.Context, email, password string) (model.Token, error) {
	form := url.Values{}
	form.Set("username", strings.TrimSpace(email))
	form.Set("password", password)

	var tok model.Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", form, &tok); err != nil {
		return model.Token{}, err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return model.Token{}, fmt.Errorf("login response has no access_token")
	}
	return tok, nil
}

func (c *Client) Register(ctx context.Context, u model.NewUser) (model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPost, "/users/", u, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0)
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
