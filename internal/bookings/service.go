package bookings

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	"github.com/shareloop/shareloop-backend/pkg/enums"
	pkgerrors "github.com/shareloop/shareloop-backend/pkg/errors"
)

// Service defines the booking lifecycle operations.
type Service interface {
	Create(ctx context.Context, bookerID int64, input CreateInput) (*Response, error)
	Resolve(ctx context.Context, ownerID, bookingID int64, approved bool) (*Response, error)
	Get(ctx context.Context, requesterID, bookingID int64) (*Response, error)
	ListForBooker(ctx context.Context, params ListParams) ([]Response, error)
	ListForOwner(ctx context.Context, params ListParams) ([]Response, error)
}

// ItemSource is the slice of the items repository the booking engine needs.
type ItemSource interface {
	FindByID(ctx context.Context, id int64) (*models.Item, error)
}

// UserSource is the slice of the users repository the booking engine needs.
type UserSource interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams wires booking dependencies.
type ServiceParams struct {
	Repo  Repository
	Items ItemSource
	Users UserSource
	Tx    TxRunner
}

type service struct {
	repo  Repository
	items ItemSource
	users UserSource
	tx    TxRunner
}

// NewService validates and assembles the booking service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "bookings repository required")
	}
	if params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "item source required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user source required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: params.Repo, items: params.Items, users: params.Users, tx: params.Tx}, nil
}

func (s *service) Create(ctx context.Context, bookerID int64, input CreateInput) (*Response, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booker")
	}
	if booker == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	item, err := s.items.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	if item.OwnerID == bookerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot book your own item")
	}
	if !item.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item is not available")
	}

	now := time.Now().UTC()
	if err := validateInterval(input.Start, input.End, now); err != nil {
		return nil, err
	}

	// A WAITING request does not reserve the window; only APPROVED bookings
	// block new requests. The approve path re-checks before committing.
	overlaps, err := s.repo.HasApprovedOverlap(ctx, item.ID, input.Start, input.End, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check overlap")
	}
	if overlaps {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item is already booked for the requested period")
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: bookerID,
		Start:    input.Start,
		End:      input.End,
		Status:   enums.BookingStatusWaiting,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}

	booking.Item = *item
	booking.Booker = *booker
	return toResponse(booking), nil
}

func (s *service) Resolve(ctx context.Context, ownerID, bookingID int64, approved bool) (*Response, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if booking.Item.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the item owner can resolve a booking")
	}
	if booking.Status.Resolved() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "booking is already resolved")
	}

	target := enums.BookingStatusRejected
	if approved {
		target = enums.BookingStatusApproved
	}

	// The overlap re-check and the status flip share one transaction.
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if approved {
			overlaps, err := repo.HasApprovedOverlap(ctx, booking.ItemID, booking.Start, booking.End, booking.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check overlap")
			}
			if overlaps {
				return pkgerrors.New(pkgerrors.CodeConflict, "an approved booking already covers this period")
			}
		}
		flipped, err := repo.TransitionStatus(ctx, booking.ID, target)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
		}
		if !flipped {
			return pkgerrors.New(pkgerrors.CodeConflict, "booking is already resolved")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	booking.Status = target
	return toResponse(booking), nil
}

func (s *service) Get(ctx context.Context, requesterID, bookingID int64) (*Response, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if booking.BookerID != requesterID && booking.Item.OwnerID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "booking belongs to another user")
	}
	return toResponse(booking), nil
}

func (s *service) ListForBooker(ctx context.Context, params ListParams) ([]Response, error) {
	if err := s.ensureUser(ctx, params.SubjectID); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListByBooker(ctx, params.SubjectID, params.State, time.Now().UTC(), params.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return toResponses(bookings), nil
}

func (s *service) ListForOwner(ctx context.Context, params ListParams) ([]Response, error) {
	if err := s.ensureUser(ctx, params.SubjectID); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListByOwner(ctx, params.SubjectID, params.State, time.Now().UTC(), params.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner bookings")
	}
	return toResponses(bookings), nil
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

func validateInterval(start, end, now time.Time) error {
	if !end.After(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "start must be before end")
	}
	if start.Before(now) {
		return pkgerrors.New(pkgerrors.CodeValidation, "start must not be in the past")
	}
	return nil
}
