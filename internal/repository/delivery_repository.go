package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"frota-service/internal/model"
)

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) Create(ctx context.Context, delivery *model.Delivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *DeliveryRepository) GetByID(ctx context.Context, id string) (*model.Delivery, error) {
	var delivery model.Delivery
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&delivery).Error
	if err != nil {
		return nil, err
	}
	delivery.Normalize()
	return &delivery, nil
}

func (r *DeliveryRepository) GetByTrackingCode(ctx context.Context, code string) (*model.Delivery, error) {
	var delivery model.Delivery
	err := r.db.WithContext(ctx).Where("tracking_code = ?", code).First(&delivery).Error
	if err != nil {
		return nil, err
	}
	delivery.Normalize()
	return &delivery, nil
}

type DeliveryListFilter struct {
	Status        *model.WorkStatus
	DriverID      *string
	EmployeeID    *string
	TruckID       *string
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

func (r *DeliveryRepository) List(ctx context.Context, filter DeliveryListFilter) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	query := r.db.WithContext(ctx).Model(&model.Delivery{})

	if filter.Status != nil {
		// Filtro casa também os aliases legados do status pedido.
		query = query.Where("status IN ?", model.StatusFilterValues(*filter.Status))
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.TruckID != nil {
		query = query.Where("truck_id = ?", *filter.TruckID)
	}
	if filter.ScheduledFrom != nil {
		query = query.Where("scheduled_date >= ?", *filter.ScheduledFrom)
	}
	if filter.ScheduledTo != nil {
		query = query.Where("scheduled_date <= ?", *filter.ScheduledTo)
	}

	if err := query.Order("created_at DESC").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	for i := range deliveries {
		deliveries[i].Normalize()
	}
	return deliveries, nil
}

func (r *DeliveryRepository) UpdateVersioned(ctx context.Context, delivery *model.Delivery, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(delivery).
		Where("version = ?", expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(delivery)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func (r *DeliveryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Delivery{}).Error
}

func (r *DeliveryRepository) CountByStatus(ctx context.Context) (map[model.WorkStatus]int64, error) {
	type row struct {
		Status model.WorkStatus
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Delivery{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Aliases legados somam na contagem do valor canônico.
	counts := make(map[model.WorkStatus]int64, len(rows))
	for _, item := range rows {
		counts[model.NormalizeStatus(item.Status)] += item.Total
	}
	return counts, nil
}
