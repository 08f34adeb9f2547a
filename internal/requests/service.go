package requests

import (
	"context"
	"strings"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	pkgerrors "github.com/shareloop/shareloop-backend/pkg/errors"
	"github.com/shareloop/shareloop-backend/pkg/pagination"
)

// Service defines item request operations.
type Service interface {
	Create(ctx context.Context, requestorID int64, input CreateInput) (*Response, error)
	ListOwn(ctx context.Context, requestorID int64) ([]Response, error)
	ListOthers(ctx context.Context, requestorID int64, page pagination.Page) ([]Response, error)
	Get(ctx context.Context, requesterID, requestID int64) (*Response, error)
}

// UserSource is the slice of the users repository the request service needs.
type UserSource interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// ItemSource resolves items created in response to requests.
type ItemSource interface {
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]models.Item, error)
}

// ServiceParams wires item request dependencies.
type ServiceParams struct {
	Repo  Repository
	Users UserSource
	Items ItemSource
}

type service struct {
	repo  Repository
	users UserSource
	items ItemSource
}

// NewService validates and assembles the item request service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "requests repository required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user source required")
	}
	if params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "item source required")
	}
	return &service{repo: params.Repo, users: params.Users, items: params.Items}, nil
}

func (s *service) Create(ctx context.Context, requestorID int64, input CreateInput) (*Response, error) {
	if err := s.ensureUser(ctx, requestorID); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description must not be blank")
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: requestorID,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item request")
	}
	return toResponse(request, nil), nil
}

func (s *service) ListOwn(ctx context.Context, requestorID int64) ([]Response, error) {
	if err := s.ensureUser(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list item requests")
	}
	return s.expand(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, requestorID int64, page pagination.Page) ([]Response, error) {
	if err := s.ensureUser(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListOthers(ctx, requestorID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list item requests")
	}
	return s.expand(ctx, requests)
}

func (s *service) Get(ctx context.Context, requesterID, requestID int64) (*Response, error) {
	if err := s.ensureUser(ctx, requesterID); err != nil {
		return nil, err
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item request")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item request not found")
	}

	items, err := s.items.ListByRequestIDs(ctx, []int64{request.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load requested items")
	}
	return toResponse(request, items), nil
}

func (s *service) expand(ctx context.Context, requests []models.ItemRequest) ([]Response, error) {
	if len(requests) == 0 {
		return []Response{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].ID)
	}

	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load requested items")
	}

	byRequest := make(map[int64][]models.Item, len(requests))
	for i := range items {
		if items[i].RequestID == nil {
			continue
		}
		byRequest[*items[i].RequestID] = append(byRequest[*items[i].RequestID], items[i])
	}

	out := make([]Response, 0, len(requests))
	for i := range requests {
		out = append(out, *toResponse(&requests[i], byRequest[requests[i].ID]))
	}
	return out, nil
}

func (s *service) ensureUser(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}
