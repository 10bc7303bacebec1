package repository

import (
	"context"

	"gorm.io/gorm"

	"frota-service/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByTarget devolve as notificações do funcionário, mais recentes primeiro.
func (r *NotificationRepository) ListByTarget(ctx context.Context, employeeID string, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	query := r.db.WithContext(ctx).
		Where("target_employee_id = ?", employeeID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("target_employee_id = ? AND read = ?", employeeID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, employeeID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND target_employee_id = ?", id, employeeID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("target_employee_id = ? AND read = ?", employeeID, false).
		Update("read", true).Error
}
