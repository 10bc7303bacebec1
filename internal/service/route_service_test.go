package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"frota-service/internal/model"
	"frota-service/internal/repository"
)

type fakeRouteStore struct {
	routes []model.Route
}

func (f *fakeRouteStore) Create(_ context.Context, route *model.Route) error {
	f.routes = append(f.routes, *route)
	return nil
}

func (f *fakeRouteStore) GetByID(_ context.Context, id string) (*model.Route, error) {
	for i := range f.routes {
		if f.routes[i].ID == id {
			r := f.routes[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRouteStore) GetByCode(_ context.Context, code string) (*model.Route, error) {
	for i := range f.routes {
		if f.routes[i].Code == code {
			r := f.routes[i]
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// List espelha o contrato do repositório: o filtro de motorista casa com o
// titular ou com a lista de auxiliares.
func (f *fakeRouteStore) List(_ context.Context, filter repository.RouteListFilter) ([]model.Route, error) {
	var out []model.Route
	for _, route := range f.routes {
		if filter.DriverID != nil && !routeHasDriver(route, *filter.DriverID) {
			continue
		}
		out = append(out, route)
	}
	return out, nil
}

func routeHasDriver(route model.Route, driverID string) bool {
	if route.DriverID != nil && *route.DriverID == driverID {
		return true
	}
	for _, id := range route.AssignedDrivers {
		if id == driverID {
			return true
		}
	}
	return false
}

func (f *fakeRouteStore) UpdateVersioned(_ context.Context, route *model.Route, expectedVersion int64) error {
	for i := range f.routes {
		if f.routes[i].ID == route.ID {
			if f.routes[i].Version != expectedVersion {
				return repository.ErrVersionMismatch
			}
			f.routes[i] = *route
			return nil
		}
	}
	return repository.ErrVersionMismatch
}

func (f *fakeRouteStore) Delete(_ context.Context, id string) error {
	for i := range f.routes {
		if f.routes[i].ID == id {
			f.routes = append(f.routes[:i], f.routes[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeAuditStore struct {
	entries []model.AuditLog
}

func (f *fakeAuditStore) Create(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditStore) List(_ context.Context, _ model.AuditScope, _ int) ([]model.AuditLog, error) {
	return f.entries, nil
}

func newTestRouteService(store *fakeRouteStore, employees *fakeEmployeeFinder) *RouteService {
	trucks := &fakeTruckFinder{}
	notifier := NewNotifier(&fakeNotificationStore{}, employees, trucks, &fakePublisher{}, zerolog.Nop())
	audit := NewAuditRecorder(&fakeAuditStore{}, zerolog.Nop())
	return NewRouteService(store, trucks, employees, notifier, audit)
}

func gestorPrincipal() model.Principal {
	return model.Principal{EmployeeID: "emp-gestor", Role: model.RoleGestor}
}

func TestRouteCreate_DuplicateCodeConflict(t *testing.T) {
	store := &fakeRouteStore{routes: []model.Route{
		{ID: "r1", Code: "RT-DUP", Status: model.StatusPendente},
	}}
	svc := newTestRouteService(store, employeeSet())

	_, err := svc.Create(context.Background(), gestorPrincipal(), RouteInput{
		Code:         "RT-DUP",
		Destinations: []model.Destination{{City: "Itu", State: "SP"}},
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, store.routes, 1)
}

func TestRouteCreate_CustomCodeAccepted(t *testing.T) {
	store := &fakeRouteStore{}
	svc := newTestRouteService(store, employeeSet())

	route, err := svc.Create(context.Background(), gestorPrincipal(), RouteInput{
		Code:         "  RT-NOVA  ",
		Destinations: []model.Destination{{City: "Itu", State: "SP"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "RT-NOVA", route.Code)
}

func TestRouteCreate_GeneratesCodeWhenBlank(t *testing.T) {
	store := &fakeRouteStore{}
	svc := newTestRouteService(store, employeeSet())

	route, err := svc.Create(context.Background(), gestorPrincipal(), RouteInput{
		Destinations: []model.Destination{{City: "Itu", State: "SP"}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, route.Code)
}

func TestRouteList_MotoristaSeesAssistedRoutes(t *testing.T) {
	store := &fakeRouteStore{routes: []model.Route{
		{ID: "r1", Code: "RT-1", DriverID: strPtr("emp-x"), Status: model.StatusPendente},
		{ID: "r2", Code: "RT-2", AssignedDrivers: []string{"emp-d"}, Status: model.StatusPendente},
		{ID: "r3", Code: "RT-3", Status: model.StatusPendente},
	}}
	svc := newTestRouteService(store, employeeSet())

	motorista := model.Principal{EmployeeID: "emp-d", Role: model.RoleMotorista}
	routes, err := svc.List(context.Background(), motorista, repository.RouteListFilter{})

	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "RT-2", routes[0].Code)
}

func TestRouteList_GestorSeesAll(t *testing.T) {
	store := &fakeRouteStore{routes: []model.Route{
		{ID: "r1", Code: "RT-1", DriverID: strPtr("emp-x"), Status: model.StatusPendente},
		{ID: "r2", Code: "RT-2", AssignedDrivers: []string{"emp-d"}, Status: model.StatusPendente},
	}}
	svc := newTestRouteService(store, employeeSet())

	routes, err := svc.List(context.Background(), gestorPrincipal(), repository.RouteListFilter{})

	require.NoError(t, err)
	assert.Len(t, routes, 2)
}
