package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/saadjs/nutri-cli/internal/api"
	"github.com/saadjs/nutri-cli/internal/model"
)

var ErrNotAdmin = errors.New("admin access required")

type AdminAPI interface {
	AdminUsers(ctx context.Context) ([]model.User, error)
}

type Admin struct {
	base
	api   AdminAPI
	users []model.User
}

func NewAdmin(a AdminAPI, log *slog.Logger) *Admin {
	return &Admin{base: newBase(log), api: a}
}

// Users loads every account. A 403 is reported as ErrNotAdmin.
func (s *Admin) Users(ctx context.Context) ([]model.User, error) {
	s.loading()
	users, err := s.api.AdminUsers(ctx)
	if err != nil && api.IsForbidden(err) {
		err = fmt.Errorf("%w: %w", ErrNotAdmin, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle(err)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.users = users
	return append([]model.User(nil), users...), nil
}
