package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"frota-service/internal/auth"
	"frota-service/internal/model"
	"frota-service/internal/repository"
)

type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	audit        *AuditRecorder
}

func NewEmployeeService(employeeRepo *repository.EmployeeRepository, audit *AuditRecorder) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, audit: audit}
}

type EmployeeInput struct {
	Name     string
	Email    string
	Phone    string
	Role     model.Role
	Status   model.EmployeeStatus
	Password string
}

func (s *EmployeeService) Create(ctx context.Context, principal model.Principal, input EmployeeInput) (*model.Employee, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if !model.ValidRole(input.Role) {
		return nil, ErrInvalidInput
	}
	if len(input.Password) < 6 {
		return nil, ErrInvalidInput
	}

	if _, err := s.employeeRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.EmployeeAtivo
	}

	employee := &model.Employee{
		Name:         input.Name,
		Email:        email,
		Phone:        input.Phone,
		Role:         input.Role,
		Status:       status,
		PasswordHash: hash,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "employee_created",
		fmt.Sprintf("Funcionário %s (%s) cadastrado", employee.Name, employee.Role), "employee")
	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context, filter repository.EmployeeListFilter) ([]model.Employee, error) {
	return s.employeeRepo.List(ctx, filter)
}

func (s *EmployeeService) Update(ctx context.Context, principal model.Principal, id string, input EmployeeInput) (*model.Employee, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	if !model.ValidRole(input.Role) {
		return nil, ErrInvalidInput
	}

	employee.Name = input.Name
	employee.Phone = input.Phone
	employee.Role = input.Role
	if input.Status != "" {
		employee.Status = input.Status
	}
	if input.Password != "" {
		if len(input.Password) < 6 {
			return nil, ErrInvalidInput
		}
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		employee.PasswordHash = hash
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "employee_updated",
		fmt.Sprintf("Funcionário %s atualizado", employee.Name), "employee")
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsGestor() {
		return ErrPermissionDenied
	}
	if id == principal.EmployeeID {
		return ErrInvalidInput
	}

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "employee_deleted",
		fmt.Sprintf("Funcionário %s removido", employee.Name), "employee")
	return nil
}

type ProfileInput struct {
	Name     string
	Phone    string
	PhotoURL *string
}

// UpdateProfile permite ao próprio funcionário ajustar nome, telefone e foto.
func (s *EmployeeService) UpdateProfile(ctx context.Context, principal model.Principal, input ProfileInput) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, principal.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		employee.Name = input.Name
	}
	if input.Phone != "" {
		employee.Phone = input.Phone
	}
	if input.PhotoURL != nil {
		employee.PhotoURL = input.PhotoURL
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeEmployee, principal.EmployeeID, "profile_updated",
		"Perfil atualizado", "employee")
	return employee, nil
}
