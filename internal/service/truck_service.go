package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"frota-service/internal/model"
	"frota-service/internal/repository"
	"frota-service/internal/utils"
)

type TruckService struct {
	truckRepo    *repository.TruckRepository
	employeeRepo *repository.EmployeeRepository
	audit        *AuditRecorder
}

func NewTruckService(
	truckRepo *repository.TruckRepository,
	employeeRepo *repository.EmployeeRepository,
	audit *AuditRecorder,
) *TruckService {
	return &TruckService{
		truckRepo:    truckRepo,
		employeeRepo: employeeRepo,
		audit:        audit,
	}
}

type TruckInput struct {
	Plate     string
	Model     string
	Year      int
	MileageKm float64
	Status    model.TruckStatus
	DriverID  model.FlexID
}

func (s *TruckService) Create(ctx context.Context, principal model.Principal, input TruckInput) (*model.Truck, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}

	plate := utils.NormalizePlate(input.Plate)
	if plate == "" {
		return nil, ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = model.TruckDisponivel
	}
	if !model.ValidTruckStatus(input.Status) {
		return nil, ErrInvalidInput
	}

	if _, err := s.truckRepo.GetByPlate(ctx, plate); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	driverID, err := s.resolveDriver(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}

	truck := &model.Truck{
		Plate:     plate,
		Model:     input.Model,
		Year:      input.Year,
		MileageKm: input.MileageKm,
		Status:    input.Status,
		DriverID:  driverID,
		Version:   1,
	}

	if err := s.truckRepo.Create(ctx, truck); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "truck_created",
		fmt.Sprintf("Caminhão %s cadastrado", plate), "truck")
	return truck, nil
}

func (s *TruckService) Get(ctx context.Context, id string) (*model.Truck, error) {
	truck, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return truck, nil
}

func (s *TruckService) List(ctx context.Context, filter repository.TruckListFilter) ([]model.Truck, error) {
	return s.truckRepo.List(ctx, filter)
}

// Update exige a versão que o chamador leu; escrita sobre versão obsoleta
// devolve conflito em vez de reproduzir o last-write-wins do painel antigo.
func (s *TruckService) Update(ctx context.Context, principal model.Principal, id string, input TruckInput, version int64) (*model.Truck, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}

	truck, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	plate := utils.NormalizePlate(input.Plate)
	if plate == "" {
		return nil, ErrInvalidInput
	}
	if !model.ValidTruckStatus(input.Status) {
		return nil, ErrInvalidInput
	}

	driverID, err := s.resolveDriver(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}

	truck.Plate = plate
	truck.Model = input.Model
	truck.Year = input.Year
	truck.MileageKm = input.MileageKm
	truck.Status = input.Status
	truck.DriverID = driverID
	truck.Version = version + 1

	if err := s.truckRepo.UpdateVersioned(ctx, truck, version); err != nil {
		if errors.Is(err, repository.ErrVersionMismatch) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "truck_updated",
		fmt.Sprintf("Caminhão %s atualizado", plate), "truck")
	return truck, nil
}

func (s *TruckService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsGestor() {
		return ErrPermissionDenied
	}

	truck, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.truckRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "truck_deleted",
		fmt.Sprintf("Caminhão %s removido", truck.Plate), "truck")
	return nil
}

// resolveDriver valida a referência de motorista; id inexistente aborta a
// operação sem mutação (diferente do propagador, que pula em silêncio).
func (s *TruckService) resolveDriver(ctx context.Context, driverID model.FlexID) (*string, error) {
	id := driverID.Ptr()
	if id == nil {
		return nil, nil
	}
	employee, err := s.employeeRepo.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if employee.Role != model.RoleMotorista {
		return nil, ErrInvalidInput
	}
	return id, nil
}
