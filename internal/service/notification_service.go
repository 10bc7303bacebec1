package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"frota-service/internal/model"
	"frota-service/internal/repository"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) ListMine(ctx context.Context, principal model.Principal, limit int) ([]model.Notification, error) {
	return s.notificationRepo.ListByTarget(ctx, principal.EmployeeID, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, principal model.Principal) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, principal.EmployeeID)
}

func (s *NotificationService) MarkRead(ctx context.Context, principal model.Principal, id string) error {
	err := s.notificationRepo.MarkRead(ctx, id, principal.EmployeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context, principal model.Principal) error {
	return s.notificationRepo.MarkAllRead(ctx, principal.EmployeeID)
}
