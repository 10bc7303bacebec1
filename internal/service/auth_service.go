package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"frota-service/internal/auth"
	"frota-service/internal/model"
	"frota-service/internal/repository"
)

type AuthService struct {
	employeeRepo *repository.EmployeeRepository
	requestRepo  *repository.AccessRequestRepository
	tokens       *auth.Manager
	audit        *AuditRecorder
}

func NewAuthService(
	employeeRepo *repository.EmployeeRepository,
	requestRepo *repository.AccessRequestRepository,
	tokens *auth.Manager,
	audit *AuditRecorder,
) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		requestRepo:  requestRepo,
		tokens:       tokens,
		audit:        audit,
	}
}

type LoginResult struct {
	Token    string          `json:"token"`
	Employee *model.Employee `json:"employee"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	employee, err := s.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	if employee.Status != model.EmployeeAtivo {
		return nil, ErrPermissionDenied
	}

	ok, err := auth.VerifyPassword(password, employee.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	token, err := s.tokens.Issue(employee)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeEmployee, employee.ID, "login",
		fmt.Sprintf("%s entrou no sistema", employee.Name), "auth")
	return &LoginResult{Token: token, Employee: employee}, nil
}

type AccessRequestInput struct {
	Name          string
	Email         string
	Phone         string
	RequestedRole model.Role
}

// SubmitAccessRequest registra o pedido público de cadastro. E-mail já
// cadastrado ou com pedido pendente é rejeitado antes de qualquer mutação.
func (s *AuthService) SubmitAccessRequest(ctx context.Context, input AccessRequestInput) (*model.AccessRequest, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if !model.ValidRole(input.RequestedRole) {
		return nil, ErrInvalidInput
	}

	if _, err := s.employeeRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pending, err := s.requestRepo.HasPendingForEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrConflict
	}

	request := &model.AccessRequest{
		Name:          input.Name,
		Email:         email,
		Phone:         input.Phone,
		RequestedRole: input.RequestedRole,
		Status:        model.AccessRequestPendente,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *AuthService) ListAccessRequests(ctx context.Context, principal model.Principal, status *model.AccessRequestStatus) ([]model.AccessRequest, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}
	return s.requestRepo.List(ctx, status)
}

// ApproveAccessRequest cria o funcionário com a senha provisória informada e
// marca o pedido como aprovado.
func (s *AuthService) ApproveAccessRequest(ctx context.Context, principal model.Principal, id, tempPassword, response string) (*model.Employee, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}
	if len(tempPassword) < 6 {
		return nil, ErrInvalidInput
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != model.AccessRequestPendente {
		return nil, ErrConflict
	}

	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	employee := &model.Employee{
		Name:         request.Name,
		Email:        request.Email,
		Phone:        request.Phone,
		Role:         request.RequestedRole,
		Status:       model.EmployeeAtivo,
		PasswordHash: hash,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = model.AccessRequestAprovado
	request.ResolvedAt = &now
	if response != "" {
		request.AdminResponse = &response
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "access_request_approved",
		fmt.Sprintf("Acesso aprovado para %s (%s)", request.Name, request.RequestedRole), "access")
	return employee, nil
}

func (s *AuthService) RejectAccessRequest(ctx context.Context, principal model.Principal, id, response string) error {
	if !principal.IsGestor() {
		return ErrPermissionDenied
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if request.Status != model.AccessRequestPendente {
		return ErrConflict
	}

	now := time.Now()
	request.Status = model.AccessRequestRejeitado
	request.ResolvedAt = &now
	if response != "" {
		request.AdminResponse = &response
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "access_request_rejected",
		fmt.Sprintf("Acesso negado para %s", request.Name), "access")
	return nil
}
