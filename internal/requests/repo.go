package requests

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	"github.com/shareloop/shareloop-backend/pkg/pagination"
)

// Repository exposes persistence helpers for item requests.
type Repository interface {
	Create(ctx context.Context, request *models.ItemRequest) error
	FindByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	ListOthers(ctx context.Context, requestorID int64, page pagination.Page) ([]models.ItemRequest, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an item request repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, request *models.ItemRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var request models.ItemRequest
	err := r.db.WithContext(ctx).First(&request, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repositoryImpl) ListByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repositoryImpl) ListOthers(ctx context.Context, requestorID int64, page pagination.Page) ([]models.ItemRequest, error) {
	page = page.Normalize()
	var requests []models.ItemRequest
	err := r.db.WithContext(ctx).
		Where("requestor_id <> ?", requestorID).
		Order("created_at DESC").
		Offset(page.From).
		Limit(page.Size).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
