package repository

import (
	"context"

	"gorm.io/gorm"

	"frota-service/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListForEmployee devolve as mensagens enviadas ou recebidas pelo funcionário.
func (r *MessageRepository) ListForEmployee(ctx context.Context, employeeID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("to_employee_id = ? OR from_employee_id = ?", employeeID, employeeID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id, employeeID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND to_employee_id = ?", id, employeeID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
