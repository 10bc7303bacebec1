package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"frota-service/internal/broker"
	"frota-service/internal/model"
)

type fakeNotificationStore struct {
	created []model.Notification
}

func (f *fakeNotificationStore) Create(_ context.Context, n *model.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

type fakeEmployeeFinder struct {
	known map[string]*model.Employee
}

func (f *fakeEmployeeFinder) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := f.known[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTruckFinder struct {
	known map[string]*model.Truck
}

func (f *fakeTruckFinder) GetByID(_ context.Context, id string) (*model.Truck, error) {
	if t, ok := f.known[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePublisher struct {
	events map[string][]broker.Event
}

func (f *fakePublisher) Publish(employeeID string, evt broker.Event) {
	if f.events == nil {
		f.events = map[string][]broker.Event{}
	}
	f.events[employeeID] = append(f.events[employeeID], evt)
}

func newTestNotifier(store *fakeNotificationStore, employees *fakeEmployeeFinder, trucks *fakeTruckFinder, pub *fakePublisher) *Notifier {
	return NewNotifier(store, employees, trucks, pub, zerolog.Nop())
}

func employeeSet(ids ...string) *fakeEmployeeFinder {
	known := map[string]*model.Employee{}
	for _, id := range ids {
		known[id] = &model.Employee{ID: id, Name: "Funcionário " + id}
	}
	return &fakeEmployeeFinder{known: known}
}

func TestDeliveryAssignmentChanged_NotifiesOnlyNewDriver(t *testing.T) {
	store := &fakeNotificationStore{}
	pub := &fakePublisher{}
	notifier := newTestNotifier(store, employeeSet("emp-a", "emp-b"), &fakeTruckFinder{}, pub)

	delivery := &model.Delivery{
		ID:           "d1",
		TrackingCode: "ENT-AABBCC11",
		DriverID:     strPtr("emp-b"),
		Status:       model.StatusPendente,
	}

	// Motorista trocado de emp-a para emp-b: só emp-b é notificado.
	notifier.DeliveryAssignmentChanged(context.Background(), delivery, strPtr("emp-a"), nil, ActionUpdated)

	require.Len(t, store.created, 1)
	assert.Equal(t, "emp-b", store.created[0].TargetEmployeeID)
	assert.Empty(t, pub.events["emp-a"])
	assert.Len(t, pub.events["emp-b"], 1)
}

func TestRouteAssignmentChanged_DriverSwapAlsoNotifiesCurrentEmployee(t *testing.T) {
	store := &fakeNotificationStore{}
	pub := &fakePublisher{}
	notifier := newTestNotifier(store, employeeSet("emp-a", "emp-b", "emp-e"), &fakeTruckFinder{}, pub)

	route := &model.Route{
		ID:         "r1",
		Code:       "RT-55667788",
		DriverID:   strPtr("emp-b"),
		EmployeeID: strPtr("emp-e"),
	}

	// Motorista trocado de emp-a para emp-b, funcionário emp-e inalterado:
	// a mudança na atribuição avisa os dois titulares atuais, nunca o antigo.
	notifier.RouteAssignmentChanged(context.Background(), route, strPtr("emp-a"), strPtr("emp-e"), ActionUpdated)

	require.Len(t, store.created, 2)
	targets := []string{store.created[0].TargetEmployeeID, store.created[1].TargetEmployeeID}
	assert.ElementsMatch(t, []string{"emp-b", "emp-e"}, targets)
	assert.Empty(t, pub.events["emp-a"])
}

func TestDeliveryAssignmentChanged_UnchangedAssignmentEmitsNothing(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := newTestNotifier(store, employeeSet("emp-a"), &fakeTruckFinder{}, &fakePublisher{})

	delivery := &model.Delivery{ID: "d1", TrackingCode: "ENT-X", DriverID: strPtr("emp-a")}

	notifier.DeliveryAssignmentChanged(context.Background(), delivery, strPtr("emp-a"), nil, ActionUpdated)

	assert.Empty(t, store.created)
}

func TestDeliveryAssignmentChanged_CreationNotifiesAllAssigned(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := newTestNotifier(store, employeeSet("emp-a", "emp-b"), &fakeTruckFinder{}, &fakePublisher{})

	delivery := &model.Delivery{
		ID:           "d1",
		TrackingCode: "ENT-X",
		DriverID:     strPtr("emp-a"),
		EmployeeID:   strPtr("emp-b"),
	}

	notifier.DeliveryAssignmentChanged(context.Background(), delivery, nil, nil, ActionCreated)

	require.Len(t, store.created, 2)
	targets := []string{store.created[0].TargetEmployeeID, store.created[1].TargetEmployeeID}
	assert.ElementsMatch(t, []string{"emp-a", "emp-b"}, targets)
}

func TestDeliveryAssignmentChanged_SameDriverAndEmployeeDeduplicated(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := newTestNotifier(store, employeeSet("emp-a"), &fakeTruckFinder{}, &fakePublisher{})

	delivery := &model.Delivery{
		ID:           "d1",
		TrackingCode: "ENT-X",
		DriverID:     strPtr("emp-a"),
		EmployeeID:   strPtr("emp-a"),
	}

	notifier.DeliveryAssignmentChanged(context.Background(), delivery, nil, nil, ActionCreated)

	require.Len(t, store.created, 1)
	assert.Equal(t, "emp-a", store.created[0].TargetEmployeeID)
}

func TestDeliveryAssignmentChanged_UnknownTargetSkippedSilently(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := newTestNotifier(store, employeeSet("emp-known"), &fakeTruckFinder{}, &fakePublisher{})

	delivery := &model.Delivery{
		ID:           "d1",
		TrackingCode: "ENT-X",
		DriverID:     strPtr("emp-ghost"),
		EmployeeID:   strPtr("emp-known"),
	}

	notifier.DeliveryAssignmentChanged(context.Background(), delivery, nil, nil, ActionCreated)

	// O alvo inexistente não derruba a emissão para o alvo válido.
	require.Len(t, store.created, 1)
	assert.Equal(t, "emp-known", store.created[0].TargetEmployeeID)
}

func TestDeliveryMessage_Contents(t *testing.T) {
	store := &fakeNotificationStore{}
	trucks := &fakeTruckFinder{known: map[string]*model.Truck{
		"t1": {ID: "t1", Plate: "ABC1D23", Model: "Volvo FH"},
	}}
	notifier := newTestNotifier(store, employeeSet("emp-a"), trucks, &fakePublisher{})

	scheduled := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	delivery := &model.Delivery{
		ID:               "d1",
		TrackingCode:     "ENT-AABBCC11",
		DriverID:         strPtr("emp-a"),
		TruckID:          strPtr("t1"),
		OriginCity:       "Campinas",
		OriginState:      "SP",
		DestinationCity:  "Sorocaba",
		DestinationState: "SP",
		ScheduledDate:    &scheduled,
	}

	notifier.DeliveryAssignmentChanged(context.Background(), delivery, nil, nil, ActionCreated)

	require.Len(t, store.created, 1)
	msg := store.created[0].Message
	assert.Contains(t, msg, "Entrega ENT-AABBCC11")
	assert.Contains(t, msg, "Caminhão: ABC1D23 (Volvo FH)")
	assert.Contains(t, msg, "Origem: Campinas/SP")
	assert.Contains(t, msg, "Destino: Sorocaba/SP")
	assert.Contains(t, msg, "Agendada para: 15/09/2026")
}

func TestDeliveryMessage_MissingTruckFallsBackToNA(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := newTestNotifier(store, employeeSet("emp-a"), &fakeTruckFinder{}, &fakePublisher{})

	delivery := &model.Delivery{
		ID:           "d1",
		TrackingCode: "ENT-X",
		DriverID:     strPtr("emp-a"),
	}

	notifier.DeliveryAssignmentChanged(context.Background(), delivery, nil, nil, ActionCreated)

	require.Len(t, store.created, 1)
	assert.Contains(t, store.created[0].Message, "Caminhão: N/A")
}

func TestRouteAssignmentChanged_MessageListsDestinations(t *testing.T) {
	store := &fakeNotificationStore{}
	notifier := newTestNotifier(store, employeeSet("emp-a"), &fakeTruckFinder{}, &fakePublisher{})

	route := &model.Route{
		ID:          "r1",
		Code:        "RT-11223344",
		DriverID:    strPtr("emp-a"),
		OriginCity:  "Campinas",
		OriginState: "SP",
		Destinations: []model.Destination{
			{City: "Itu", State: "SP"},
			{City: "Salto", State: "SP"},
			{City: "Indaiatuba", State: "SP"},
		},
	}

	notifier.RouteAssignmentChanged(context.Background(), route, nil, nil, ActionCreated)

	require.Len(t, store.created, 1)
	created := store.created[0]
	assert.Equal(t, "atribuicao_rota", created.Type)
	assert.Contains(t, created.Message, "Rota RT-11223344")
	assert.Contains(t, created.Message, "Destinos: Itu/SP e mais 2")
	require.NotNil(t, created.RelatedType)
	assert.Equal(t, model.RelatedRoute, *created.RelatedType)
}
