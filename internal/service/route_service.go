package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"frota-service/internal/model"
	"frota-service/internal/repository"
)

// routeStore é a visão do serviço sobre o repositório de rotas; os testes
// trocam por uma implementação em memória.
type routeStore interface {
	Create(ctx context.Context, route *model.Route) error
	GetByID(ctx context.Context, id string) (*model.Route, error)
	GetByCode(ctx context.Context, code string) (*model.Route, error)
	List(ctx context.Context, filter repository.RouteListFilter) ([]model.Route, error)
	UpdateVersioned(ctx context.Context, route *model.Route, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
}

type RouteService struct {
	routeRepo    routeStore
	truckRepo    truckFinder
	employeeRepo employeeFinder
	notifier     *Notifier
	audit        *AuditRecorder
}

func NewRouteService(
	routeRepo routeStore,
	truckRepo truckFinder,
	employeeRepo employeeFinder,
	notifier *Notifier,
	audit *AuditRecorder,
) *RouteService {
	return &RouteService{
		routeRepo:    routeRepo,
		truckRepo:    truckRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		audit:        audit,
	}
}

type RouteInput struct {
	Code            string
	TruckID         model.FlexID
	DriverID        model.FlexID
	EmployeeID      model.FlexID
	AssignedDrivers []model.FlexID
	OriginCity      string
	OriginState     string
	Destinations    []model.Destination
	ScheduledDate   *time.Time
}

// RouteDetails agrega a rota com os totais derivados dos itens.
type RouteDetails struct {
	Route         model.Route `json:"route"`
	TotalWeightKg float64     `json:"total_weight_kg"`
	TotalValue    float64     `json:"total_value"`
}

func (s *RouteService) Create(ctx context.Context, principal model.Principal, input RouteInput) (*model.Route, error) {
	if principal.IsMotorista() {
		return nil, ErrPermissionDenied
	}
	if len(input.Destinations) == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.checkRefs(ctx, input); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = newTrackingCode("RT")
	} else {
		if _, err := s.routeRepo.GetByCode(ctx, code); err == nil {
			return nil, ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	route := &model.Route{
		Code:            code,
		TruckID:         input.TruckID.Ptr(),
		DriverID:        input.DriverID.Ptr(),
		EmployeeID:      input.EmployeeID.Ptr(),
		AssignedDrivers: flexIDs(input.AssignedDrivers),
		Status:          model.StatusPendente,
		OriginCity:      input.OriginCity,
		OriginState:     input.OriginState,
		Destinations:    input.Destinations,
		ScheduledDate:   input.ScheduledDate,
		Version:         1,
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}

	s.notifier.RouteAssignmentChanged(ctx, route, nil, nil, ActionCreated)
	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "route_created",
		fmt.Sprintf("Rota %s criada com %d destino(s)", route.Code, len(route.Destinations)), "route")
	return route, nil
}

func (s *RouteService) Get(ctx context.Context, principal model.Principal, id string) (*RouteDetails, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canAccess(principal, route) {
		return nil, ErrPermissionDenied
	}
	return &RouteDetails{
		Route:         *route,
		TotalWeightKg: route.TotalWeightKg(),
		TotalValue:    route.TotalValue(),
	}, nil
}

func (s *RouteService) List(ctx context.Context, principal model.Principal, filter repository.RouteListFilter) ([]model.Route, error) {
	if principal.IsMotorista() {
		driverID := principal.EmployeeID
		filter.DriverID = &driverID
	}
	return s.routeRepo.List(ctx, filter)
}

func (s *RouteService) Update(ctx context.Context, principal model.Principal, id string, input RouteInput, version int64) (*model.Route, error) {
	if principal.IsMotorista() {
		return nil, ErrPermissionDenied
	}

	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(input.Destinations) == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.checkRefs(ctx, input); err != nil {
		return nil, err
	}

	prevDriverID := route.DriverID
	prevEmployeeID := route.EmployeeID

	route.TruckID = input.TruckID.Ptr()
	route.DriverID = input.DriverID.Ptr()
	route.EmployeeID = input.EmployeeID.Ptr()
	route.AssignedDrivers = flexIDs(input.AssignedDrivers)
	route.OriginCity = input.OriginCity
	route.OriginState = input.OriginState
	route.Destinations = input.Destinations
	route.ScheduledDate = input.ScheduledDate
	route.Version = version + 1

	if err := s.routeRepo.UpdateVersioned(ctx, route, version); err != nil {
		if errors.Is(err, repository.ErrVersionMismatch) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.notifier.RouteAssignmentChanged(ctx, route, prevDriverID, prevEmployeeID, ActionUpdated)
	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "route_updated",
		fmt.Sprintf("Rota %s atualizada", route.Code), "route")
	return route, nil
}

// UpdateStatus espelha a regra das entregas: transição livre, entregue é
// terminal e carimba completed_at se ainda não houver.
func (s *RouteService) UpdateStatus(ctx context.Context, principal model.Principal, id string, status model.WorkStatus, version int64) (*model.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canAccess(principal, route) {
		return nil, ErrPermissionDenied
	}

	normalized := model.NormalizeStatus(status)
	switch normalized {
	case model.StatusPendente, model.StatusEmCarregamento, model.StatusEmPercurso, model.StatusEntregue:
	default:
		return nil, ErrInvalidInput
	}

	route.Status = normalized
	if normalized == model.StatusEntregue && route.CompletedAt == nil {
		now := time.Now()
		route.CompletedAt = &now
	}
	route.Version = version + 1

	if err := s.routeRepo.UpdateVersioned(ctx, route, version); err != nil {
		if errors.Is(err, repository.ErrVersionMismatch) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.audit.Record(ctx, model.AuditScopeEmployee, principal.EmployeeID, "route_status",
		fmt.Sprintf("Rota %s agora %s", route.Code, normalized), "route")
	return route, nil
}

func (s *RouteService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsGestor() {
		return ErrPermissionDenied
	}

	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.routeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, model.AuditScopeSystem, principal.EmployeeID, "route_deleted",
		fmt.Sprintf("Rota %s removida", route.Code), "route")
	return nil
}

func (s *RouteService) canAccess(principal model.Principal, route *model.Route) bool {
	if !principal.IsMotorista() {
		return true
	}
	if route.DriverID != nil && *route.DriverID == principal.EmployeeID {
		return true
	}
	for _, id := range route.AssignedDrivers {
		if id == principal.EmployeeID {
			return true
		}
	}
	return false
}

func (s *RouteService) checkRefs(ctx context.Context, input RouteInput) error {
	if id := input.TruckID.Ptr(); id != nil {
		if _, err := s.truckRepo.GetByID(ctx, *id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
	}
	refs := append([]model.FlexID{input.DriverID, input.EmployeeID}, input.AssignedDrivers...)
	for _, ref := range refs {
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

func flexIDs(ids []model.FlexID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id.String())
		}
	}
	return out
}
