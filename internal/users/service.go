package users

import (
	"context"
	"strings"

	"github.com/shareloop/shareloop-backend/pkg/db"
	"github.com/shareloop/shareloop-backend/pkg/db/models"
	pkgerrors "github.com/shareloop/shareloop-backend/pkg/errors"
)

// Service defines user account operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Response, error)
	Update(ctx context.Context, userID int64, input UpdateInput) (*Response, error)
	Get(ctx context.Context, userID int64) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Delete(ctx context.Context, userID int64) error
}

type service struct {
	repo Repository
}

// NewService wires user dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Response, error) {
	user := &models.User{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "uq_users_email") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return toResponse(user), nil
}

func (s *service) Update(ctx context.Context, userID int64, input UpdateInput) (*Response, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "uq_users_email") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return toResponse(user), nil
}

func (s *service) Get(ctx context.Context, userID int64) (*Response, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return toResponse(user), nil
}

func (s *service) List(ctx context.Context) ([]Response, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return toResponses(users), nil
}

func (s *service) Delete(ctx context.Context, userID int64) error {
	deleted, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
