package repository

import (
	"context"

	"gorm.io/gorm"

	"frota-service/internal/model"
)

type AccessRequestRepository struct {
	db *gorm.DB
}

func NewAccessRequestRepository(db *gorm.DB) *AccessRequestRepository {
	return &AccessRequestRepository{db: db}
}

func (r *AccessRequestRepository) Create(ctx context.Context, request *model.AccessRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *AccessRequestRepository) GetByID(ctx context.Context, id string) (*model.AccessRequest, error) {
	var request model.AccessRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *AccessRequestRepository) HasPendingForEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AccessRequest{}).
		Where("email = ? AND status = ?", email, model.AccessRequestPendente).
		Count(&count).Error
	return count > 0, err
}

func (r *AccessRequestRepository) List(ctx context.Context, status *model.AccessRequestStatus) ([]model.AccessRequest, error) {
	var requests []model.AccessRequest
	query := r.db.WithContext(ctx).Model(&model.AccessRequest{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *AccessRequestRepository) Update(ctx context.Context, request *model.AccessRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}
