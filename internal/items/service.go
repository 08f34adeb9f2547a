package items

import (
	"context"
	"strings"
	"time"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	pkgerrors "github.com/shareloop/shareloop-backend/pkg/errors"
	"github.com/shareloop/shareloop-backend/pkg/pagination"
)

// Service defines item listing and comment operations.
type Service interface {
	Create(ctx context.Context, ownerID int64, input CreateInput) (*Response, error)
	Update(ctx context.Context, ownerID, itemID int64, input UpdateInput) (*Response, error)
	Get(ctx context.Context, requesterID, itemID int64) (*DetailResponse, error)
	ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]DetailResponse, error)
	Search(ctx context.Context, text string, page pagination.Page) ([]Response, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
	AddComment(ctx context.Context, authorID, itemID int64, input CommentInput) (*CommentResponse, error)
}

// UserSource is the slice of the users repository the item service needs.
type UserSource interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// RequestSource resolves the optional originating item request.
type RequestSource interface {
	FindByID(ctx context.Context, id int64) (*models.ItemRequest, error)
}

// BookingSource is the slice of the bookings repository used for the owner's
// item view and for comment eligibility.
type BookingSource interface {
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

// ServiceParams wires item dependencies.
type ServiceParams struct {
	Repo     Repository
	Comments CommentRepository
	Users    UserSource
	Requests RequestSource
	Bookings BookingSource
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    UserSource
	requests RequestSource
	bookings BookingSource
}

// NewService validates and assembles the item service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "items repository required")
	}
	if params.Comments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "comments repository required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user source required")
	}
	if params.Requests == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "request source required")
	}
	if params.Bookings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "booking source required")
	}
	return &service{
		repo:     params.Repo,
		comments: params.Comments,
		users:    params.Users,
		requests: params.Requests,
		bookings: params.Bookings,
	}, nil
}

func (s *service) Create(ctx context.Context, ownerID int64, input CreateInput) (*Response, error) {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	if input.RequestID != nil {
		request, err := s.requests.FindByID(ctx, *input.RequestID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item request")
		}
		if request == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item request not found")
		}
	}

	item := &models.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Available:   *input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return toResponse(item), nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, input UpdateInput) (*Response, error) {
	item, err := s.loadOwned(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	return toResponse(item), nil
}

func (s *service) Get(ctx context.Context, requesterID, itemID int64) (*DetailResponse, error) {
	if err := s.ensureUser(ctx, requesterID); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	detail := &DetailResponse{Response: *toResponse(item)}

	comments, err := s.comments.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	detail.Comments = toCommentResponses(comments)

	// Booking info is for the owner's eyes only.
	if item.OwnerID == requesterID {
		if err := s.attachBookingInfo(ctx, detail, item.ID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, page pagination.Page) ([]DetailResponse, error) {
	if err := s.ensureUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	out := make([]DetailResponse, 0, len(items))
	for i := range items {
		detail := DetailResponse{Response: *toResponse(&items[i])}

		comments, err := s.comments.ListByItem(ctx, items[i].ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
		}
		detail.Comments = toCommentResponses(comments)

		if err := s.attachBookingInfo(ctx, &detail, items[i].ID); err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, text string, page pagination.Page) ([]Response, error) {
	if strings.TrimSpace(text) == "" {
		return []Response{}, nil
	}
	items, err := s.repo.Search(ctx, strings.TrimSpace(text), page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search items")
	}
	return toResponses(items), nil
}

func (s *service) Delete(ctx context.Context, ownerID, itemID int64) error {
	if _, err := s.loadOwned(ctx, ownerID, itemID); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, input CommentInput) (*CommentResponse, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load author")
	}
	if author == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment text must not be blank")
	}

	now := time.Now().UTC()
	eligible, err := s.bookings.HasFinishedApprovedBooking(ctx, item.ID, authorID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check comment eligibility")
	}
	if !eligible {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comments require a completed rental of the item")
	}

	comment := &models.Comment{
		ItemID:   item.ID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}

	comment.Author = *author
	return toCommentResponse(comment), nil
}

func (s *service) loadOwned(ctx context.Context, ownerID, itemID int64) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	if item.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "item belongs to another user")
	}
	return item, nil
}

func (s *service) attachBookingInfo(ctx context.Context, detail *DetailResponse, itemID int64) error {
	now := time.Now().UTC()

	last, err := s.bookings.LastForItem(ctx, itemID, now)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load last booking")
	}
	next, err := s.bookings.NextForItem(ctx, itemID, now)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load next booking")
	}

	detail.LastBooking = toBookingRef(last)
	detail.NextBooking = toBookingRef(next)
	return nil
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
