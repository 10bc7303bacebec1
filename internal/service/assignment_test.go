package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota-service/internal/model"
)

func strPtr(s string) *string { return &s }

func TestResolveAssignment_EmptyActorID(t *testing.T) {
	trucks := []model.Truck{{ID: "t1", Plate: "ABC1D23", DriverID: strPtr("emp-1")}}
	deliveries := []model.Delivery{{ID: "d1", DriverID: strPtr("emp-1"), Status: model.StatusPendente}}
	routes := []model.Route{{ID: "r1", DriverID: strPtr("emp-1"), Status: model.StatusPendente}}

	got := ResolveAssignment("", trucks, deliveries, routes)

	assert.Nil(t, got.Truck)
	assert.Nil(t, got.Delivery)
	assert.Nil(t, got.Route)
}

func TestResolveAssignment_DirectTruckWins(t *testing.T) {
	// Motorista vinculado diretamente ao caminhão t1; a entrega aponta outro
	// caminhão, mas o vínculo direto tem precedência.
	trucks := []model.Truck{
		{ID: "t1", Plate: "ABC1D23", DriverID: strPtr("emp-7")},
		{ID: "t2", Plate: "XYZ9K88"},
	}
	deliveries := []model.Delivery{
		{ID: "d1", DriverID: strPtr("emp-7"), TruckID: strPtr("t2"), Status: model.StatusEmPercurso},
	}

	got := ResolveAssignment("emp-7", trucks, deliveries, nil)

	require.NotNil(t, got.Truck)
	assert.Equal(t, "t1", got.Truck.ID)
	require.NotNil(t, got.Delivery)
	assert.Equal(t, "d1", got.Delivery.ID)
}

func TestResolveAssignment_TruckFromDelivery(t *testing.T) {
	trucks := []model.Truck{{ID: "t2", Plate: "XYZ9K88"}}
	deliveries := []model.Delivery{
		{ID: "d1", DriverID: strPtr("emp-7"), TruckID: strPtr("t2"), Status: model.StatusPendente},
	}

	got := ResolveAssignment("emp-7", trucks, deliveries, nil)

	require.NotNil(t, got.Truck)
	assert.Equal(t, "t2", got.Truck.ID)
}

func TestResolveAssignment_TruckFromRoute(t *testing.T) {
	trucks := []model.Truck{{ID: "t3", Plate: "QWE4R56"}}
	routes := []model.Route{
		{ID: "r1", DriverID: strPtr("emp-7"), TruckID: strPtr("t3"), Status: model.StatusPendente},
	}

	got := ResolveAssignment("emp-7", trucks, nil, routes)

	require.NotNil(t, got.Truck)
	assert.Equal(t, "t3", got.Truck.ID)
	require.NotNil(t, got.Route)
	assert.Equal(t, "r1", got.Route.ID)
	assert.Nil(t, got.Delivery)
}

func TestResolveAssignment_RouteRederivedViaTruck(t *testing.T) {
	// O motorista não aparece em nenhuma rota, mas tem caminhão direto; a rota
	// ativa que referencia esse caminhão é recuperada.
	trucks := []model.Truck{{ID: "t1", Plate: "ABC1D23", DriverID: strPtr("emp-7")}}
	routes := []model.Route{
		{ID: "r-other", TruckID: strPtr("t9"), Status: model.StatusEmPercurso},
		{ID: "r-mine", TruckID: strPtr("t1"), Status: model.StatusEmPercurso},
	}

	got := ResolveAssignment("emp-7", trucks, nil, routes)

	require.NotNil(t, got.Route)
	assert.Equal(t, "r-mine", got.Route.ID)
}

func TestResolveAssignment_TerminalExcluded(t *testing.T) {
	deliveries := []model.Delivery{
		{ID: "d-done", DriverID: strPtr("emp-7"), Status: model.StatusEntregue},
	}
	routes := []model.Route{
		{ID: "r-legacy-done", DriverID: strPtr("emp-7"), Status: "concluida"},
		{ID: "r-cancelled", DriverID: strPtr("emp-7"), Status: "cancelada"},
	}

	got := ResolveAssignment("emp-7", nil, deliveries, routes)

	assert.Nil(t, got.Delivery)
	assert.Nil(t, got.Route)
	assert.Nil(t, got.Truck)
}

func TestResolveAssignment_ActiveBeatsRecency(t *testing.T) {
	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// "rascunho" não é terminal nem ativo: candidato apenas por recência.
	deliveries := []model.Delivery{
		{ID: "d-newer-draft", DriverID: strPtr("emp-7"), Status: "rascunho", CreatedAt: newer},
		{ID: "d-older-active", DriverID: strPtr("emp-7"), Status: model.StatusEmCarregamento, CreatedAt: older},
	}

	got := ResolveAssignment("emp-7", nil, deliveries, nil)

	require.NotNil(t, got.Delivery)
	assert.Equal(t, "d-older-active", got.Delivery.ID)
}

func TestResolveAssignment_MostRecentFallback(t *testing.T) {
	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	routes := []model.Route{
		{ID: "r-old", DriverID: strPtr("emp-7"), Status: "rascunho", CreatedAt: older},
		{ID: "r-new", DriverID: strPtr("emp-7"), Status: "rascunho", CreatedAt: newer},
	}

	got := ResolveAssignment("emp-7", nil, nil, routes)

	require.NotNil(t, got.Route)
	assert.Equal(t, "r-new", got.Route.ID)
}

func TestResolveAssignment_AssignedDriversList(t *testing.T) {
	routes := []model.Route{
		{ID: "r1", AssignedDrivers: []string{"emp-3", "emp-7"}, Status: model.StatusPendente},
	}

	got := ResolveAssignment("emp-7", nil, nil, routes)

	require.NotNil(t, got.Route)
	assert.Equal(t, "r1", got.Route.ID)
}

func TestResolveAssignment_EmployeeMatch(t *testing.T) {
	// Funcionário (não motorista) referenciado pelo campo auxiliar também
	// resolve atribuição.
	deliveries := []model.Delivery{
		{ID: "d1", EmployeeID: strPtr("emp-9"), Status: model.StatusPendente},
	}

	got := ResolveAssignment("emp-9", nil, deliveries, nil)

	require.NotNil(t, got.Delivery)
	assert.Equal(t, "d1", got.Delivery.ID)
}

func TestResolveAssignment_WhitespaceIDsNeverMatch(t *testing.T) {
	deliveries := []model.Delivery{
		{ID: "d1", DriverID: strPtr("  "), Status: model.StatusPendente},
	}

	got := ResolveAssignment("  ", nil, deliveries, nil)

	assert.Nil(t, got.Delivery)
}
