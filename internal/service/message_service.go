package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"frota-service/internal/model"
	"frota-service/internal/repository"
)

type MessageService struct {
	messageRepo  *repository.MessageRepository
	employeeRepo *repository.EmployeeRepository
}

func NewMessageService(messageRepo *repository.MessageRepository, employeeRepo *repository.EmployeeRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, employeeRepo: employeeRepo}
}

type MessageInput struct {
	ToEmployeeID model.FlexID
	Subject      string
	Body         string
}

func (s *MessageService) Send(ctx context.Context, principal model.Principal, input MessageInput) (*model.Message, error) {
	to := input.ToEmployeeID.Ptr()
	if to == nil || input.Body == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.employeeRepo.GetByID(ctx, *to); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	message := &model.Message{
		FromEmployeeID: principal.EmployeeID,
		ToEmployeeID:   *to,
		Subject:        input.Subject,
		Body:           input.Body,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) ListMine(ctx context.Context, principal model.Principal) ([]model.Message, error) {
	return s.messageRepo.ListForEmployee(ctx, principal.EmployeeID)
}

func (s *MessageService) MarkRead(ctx context.Context, principal model.Principal, id string) error {
	err := s.messageRepo.MarkRead(ctx, id, principal.EmployeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
