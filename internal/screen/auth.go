package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/saadjs/nutri-cli/internal/api"
	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/session"
)

// ErrSessionExpired is returned after the backend rejected the stored
// credential and it was cleared.
var ErrSessionExpired = errors.New("session expired, log in again")

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (model.Token, error)
	Register(ctx context.Context, u model.NewUser) (model.User, error)
	Me(ctx context.Context) (model.User, error)
}

type Auth struct {
	api  AuthAPI
	sess *session.Session
	log  *slog.Logger
}

func NewAuth(a AuthAPI, sess *session.Session, log *slog.Logger) *Auth {
	return &Auth{api: a, sess: sess, log: orDiscard(log)}
}

// Login exchanges credentials for a token, stores it, and returns the user
// it belongs to.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, error) {
	if email == "" || password == "" {
		return model.User{}, fmt.Errorf("email and password are required")
	}
	tok, err := a.api.Login(ctx, email, password)
	if err != nil {
		return model.User{}, fmt.Errorf("login: %w", err)
	}
	if err := a.sess.Set(ctx, tok.AccessToken); err != nil {
		return model.User{}, err
	}
	u, err := a.api.Me(ctx)
	if err != nil {
		return model.User{}, a.Check(ctx, fmt.Errorf("fetch current user: %w", err))
	}
	a.log.InfoContext(ctx, "screen: logged in", "email", u.Email)
	return u, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.sess.Clear(ctx)
}

// Register validates u locally before any request is made.
func (a *Auth) Register(ctx context.Context, u model.NewUser) (model.User, error) {
	if err := u.Validate(); err != nil {
		return model.User{}, err
	}
	out, err := a.api.Register(ctx, u)
	if err != nil {
		return model.User{}, fmt.Errorf("register: %w", err)
	}
	return out, nil
}

// CurrentUser fails with session.ErrNoCredential when nobody is logged in.
func (a *Auth) CurrentUser(ctx context.Context) (model.User, error) {
	if _, err := a.sess.Require(ctx); err != nil {
		return model.User{}, err
	}
	u, err := a.api.Me(ctx)
	if err != nil {
		return model.User{}, a.Check(ctx, fmt.Errorf("fetch current user: %w", err))
	}
	return u, nil
}

// Check clears the credential when err is an authentication failure and
// reports ErrSessionExpired in its place. Other errors pass through.
func (a *Auth) Check(ctx context.Context, err error) error {
	if err == nil || !api.IsUnauthorized(err) || errors.Is(err, ErrSessionExpired) {
		return err
	}
	if cerr := a.sess.Clear(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	a.log.WarnContext(ctx, "screen: credential rejected, cleared", "error", err)
	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}
