package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"frota-service/internal/model"
	"frota-service/internal/repository"
)

type DeliveryService struct {
	deliveryRepo *repository.DeliveryRepository
	truckRepo    *repository.TruckRepository
	employeeRepo *repository.EmployeeRepository
	notifier     *Notifier
	audit        *AuditRecorder
}

func NewDeliveryService(
	deliveryRepo *repository.DeliveryRepository,
	truckRepo *repository.TruckRepository,
	employeeRepo *repository.EmployeeRepository,
	notifier *Notifier,
	audit *AuditRecorder,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		truckRepo:    truckRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		audit:        audit,
	}
}

type DeliveryInput struct {
	TrackingCode string
	TruckID      model.FlexID
	DriverID     model.FlexID
	EmployeeID   model.FlexID
	// Status vale apenas na criação; Update preserva o status corrente e
	// mudanças passam por UpdateStatus, que carimba delivered_at.
	Status           model.WorkStatus
	ScheduledDate    *time.Time
	CustomerName     string
	CustomerDocument string
	CustomerPhone    string
	OriginCity       string
	OriginState      string
	DestinationCity  string
	DestinationState string
	CargoDescription string
	CargoWeightKg    float64
	PaymentMethod    string
	PaymentValue     float64
}

func (s *DeliveryService) Create(ctx context.Context, principal model.Principal, input DeliveryInput) (*model.Delivery, error) {
	if principal.IsMotorista() {
		return nil, ErrPermissionDenied
	}
	if input.CustomerName == "" {
		return nil, ErrInvalidInput
	}

	status := model.NormalizeStatus(input.Status)
	if status == "" {
		status = model.StatusPendente
	}

	if err := s.checkRefs(ctx, input); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.TrackingCode)
	if code == "" {
		code = newTrackingCode("ENT")
	} else {
		if _, err := s.deliveryRepo.GetByTrackingCode(ctx, code); err == nil {
			return nil, ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	delivery := &model.Delivery{
		TrackingCode:     code,
		TruckID:          input.TruckID.Ptr(),
		DriverID:         input.DriverID.Ptr(),
		EmployeeID:       input.EmployeeID.Ptr(),
		Status:           status,
		ScheduledDate:    input.ScheduledDate,
		CustomerName:     input.CustomerName,
		CustomerDocument: input.CustomerDocument,
		CustomerPhone:    input.CustomerPhone,
		OriginCity:       input.OriginCity,
		OriginState:      input.OriginState,
		DestinationCity:  input.DestinationCity,
		DestinationState: input.DestinationState,
		CargoDescription: input.CargoDescription,
		CargoWeightKg:    input.CargoWeightKg,
		PaymentMethod:    input.PaymentMethod,
		PaymentValue:     input.PaymentValue,
		Version:          1,
	}
	if status == model.StatusEntregue {
		now := time.Now()
		delivery.DeliveredAt = &now
	}

	if err := s.deliveryRepo.Create(ctx, delivery); err != nil {
		return nil, err
	}

	s.notifier.DeliveryAssignmentChanged(ctx, delivery, nil, nil, ActionCreated)
	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "delivery_created",
		fmt.Sprintf("Entrega %s criada", delivery.TrackingCode), "delivery")
	return delivery, nil
}

func (s *DeliveryService) Get(ctx context.Context, principal model.Principal, id string) (*model.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canAccess(principal, delivery) {
		return nil, ErrPermissionDenied
	}
	return delivery, nil
}

// List restringe a visão por papel: motorista enxerga as próprias entregas,
// os demais papéis enxergam tudo.
func (s *DeliveryService) List(ctx context.Context, principal model.Principal, filter repository.DeliveryListFilter) ([]model.Delivery, error) {
	if principal.IsMotorista() {
		driverID := principal.EmployeeID
		filter.DriverID = &driverID
	}
	return s.deliveryRepo.List(ctx, filter)
}

// Update regrava os dados cadastrais da entrega. O status não muda por aqui:
// input.Status é ignorado e a transição fica a cargo de UpdateStatus.
func (s *DeliveryService) Update(ctx context.Context, principal model.Principal, id string, input DeliveryInput, version int64) (*model.Delivery, error) {
	if principal.IsMotorista() {
		return nil, ErrPermissionDenied
	}

	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if input.CustomerName == "" {
		return nil, ErrInvalidInput
	}
	if err := s.checkRefs(ctx, input); err != nil {
		return nil, err
	}

	prevDriverID := delivery.DriverID
	prevEmployeeID := delivery.EmployeeID

	delivery.TruckID = input.TruckID.Ptr()
	delivery.DriverID = input.DriverID.Ptr()
	delivery.EmployeeID = input.EmployeeID.Ptr()
	delivery.ScheduledDate = input.ScheduledDate
	delivery.CustomerName = input.CustomerName
	delivery.CustomerDocument = input.CustomerDocument
	delivery.CustomerPhone = input.CustomerPhone
	delivery.OriginCity = input.OriginCity
	delivery.OriginState = input.OriginState
	delivery.DestinationCity = input.DestinationCity
	delivery.DestinationState = input.DestinationState
	delivery.CargoDescription = input.CargoDescription
	delivery.CargoWeightKg = input.CargoWeightKg
	delivery.PaymentMethod = input.PaymentMethod
	delivery.PaymentValue = input.PaymentValue
	delivery.Version = version + 1

	if err := s.deliveryRepo.UpdateVersioned(ctx, delivery, version); err != nil {
		if errors.Is(err, repository.ErrVersionMismatch) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.notifier.DeliveryAssignmentChanged(ctx, delivery, prevDriverID, prevEmployeeID, ActionUpdated)
	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "delivery_updated",
		fmt.Sprintf("Entrega %s atualizada", delivery.TrackingCode), "delivery")
	return delivery, nil
}

// UpdateStatus aceita qualquer transição (o fluxo pendente → em_carregamento
// → em_percurso → entregue não é imposto); entrar em entregue carimba
// delivered_at uma única vez e torna a entrega terminal para o resolver.
func (s *DeliveryService) UpdateStatus(ctx context.Context, principal model.Principal, id string, status model.WorkStatus, version int64) (*model.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canAccess(principal, delivery) {
		return nil, ErrPermissionDenied
	}

	normalized := model.NormalizeStatus(status)
	switch normalized {
	case model.StatusPendente, model.StatusEmCarregamento, model.StatusEmPercurso, model.StatusEntregue:
	default:
		return nil, ErrInvalidInput
	}

	delivery.Status = normalized
	if normalized == model.StatusEntregue && delivery.DeliveredAt == nil {
		now := time.Now()
		delivery.DeliveredAt = &now
	}
	delivery.Version = version + 1

	if err := s.deliveryRepo.UpdateVersioned(ctx, delivery, version); err != nil {
		if errors.Is(err, repository.ErrVersionMismatch) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeEmployee, principal.EmployeeID, "delivery_status",
		fmt.Sprintf("Entrega %s agora %s", delivery.TrackingCode, normalized), "delivery")
	return delivery, nil
}

func (s *DeliveryService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsGestor() {
		return ErrPermissionDenied
	}

	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.deliveryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "delivery_deleted",
		fmt.Sprintf("Entrega %s removida", delivery.TrackingCode), "delivery")
	return nil
}

func (s *DeliveryService) canAccess(principal model.Principal, delivery *model.Delivery) bool {
	if principal.IsMotorista() {
		return delivery.DriverID != nil && *delivery.DriverID == principal.EmployeeID
	}
	return true
}

// checkRefs valida as referências informadas antes de qualquer mutação.
func (s *DeliveryService) checkRefs(ctx context.Context, input DeliveryInput) error {
	if id := input.TruckID.Ptr(); id != nil {
		if _, err := s.truckRepo.GetByID(ctx, *id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
	}
	for _, ref := range []model.FlexID{input.DriverID, input.EmployeeID} {
		if id := ref.Ptr(); id != nil {
			if _, err := s.employeeRepo.GetByID(ctx, *id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
		}
	}
	return nil
}

func newTrackingCode(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}
