package bookings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	"github.com/shareloop/shareloop-backend/pkg/enums"
	"github.com/shareloop/shareloop-backend/pkg/pagination"
)

// Repository exposes persistence helpers for bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
	// TransitionStatus flips a WAITING booking to the target status. It
	// reports false when the booking was not in WAITING anymore, which is how
	// concurrent approvals lose the race.
	TransitionStatus(ctx context.Context, bookingID int64, to enums.BookingStatus) (bool, error)
	HasApprovedOverlap(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error)
	ListByBooker(ctx context.Context, bookerID int64, state enums.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state enums.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a bookings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repositoryImpl) TransitionStatus(ctx context.Context, bookingID int64, to enums.BookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, enums.BookingStatusWaiting).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) HasApprovedOverlap(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("item_id = ? AND status = ?", itemID, enums.BookingStatusApproved).
		Where("start_at < ? AND end_at > ?", end, start)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) ListByBooker(ctx context.Context, bookerID int64, state enums.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booker_id = ?", bookerID)
	return r.listFiltered(query, state, now, page)
}

func (r *repositoryImpl) ListByOwner(ctx context.Context, ownerID int64, state enums.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return r.listFiltered(query, state, now, page)
}

func (r *repositoryImpl) listFiltered(query *gorm.DB, state enums.BookingState, now time.Time, page pagination.Page) ([]models.Booking, error) {
	query = applyStateFilter(query, state, now)

	page = page.Normalize()
	var bookings []models.Booking
	err := query.
		Preload("Item").
		Preload("Booker").
		Order("bookings.start_at DESC").
		Offset(page.From).
		Limit(page.Size).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func applyStateFilter(query *gorm.DB, state enums.BookingState, now time.Time) *gorm.DB {
	if status, ok := state.Status(); ok {
		return query.Where("bookings.status = ?", status)
	}
	switch state {
	case enums.BookingStateCurrent:
		return query.Where("bookings.start_at <= ? AND bookings.end_at >= ?", now, now)
	case enums.BookingStatePast:
		return query.Where("bookings.end_at < ?", now)
	case enums.BookingStateFuture:
		return query.Where("bookings.start_at > ?", now)
	}
	return query
}

func (r *repositoryImpl) LastForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_at <= ?", itemID, enums.BookingStatusApproved, now).
		Order("start_at DESC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repositoryImpl) NextForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_at > ?", itemID, enums.BookingStatusApproved, now).
		Order("start_at ASC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repositoryImpl) HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_at < ?",
			itemID, bookerID, enums.BookingStatusApproved, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
