package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota-service/internal/model"
)

func TestDeliveryInvoice(t *testing.T) {
	scheduled := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	data := InvoiceData{
		Delivery: model.Delivery{
			ID:               "d1",
			TrackingCode:     "ENT-AABBCC11",
			Status:           model.StatusEmPercurso,
			CustomerName:     "Construtora Alfa",
			CustomerDocument: "12.345.678/0001-90",
			OriginCity:       "Campinas",
			OriginState:      "SP",
			DestinationCity:  "Itu",
			DestinationState: "SP",
			CargoDescription: "Cimento CP-II, 200 sacos",
			CargoWeightKg:    10000,
			PaymentMethod:    "boleto",
			PaymentValue:     8400,
			ScheduledDate:    &scheduled,
		},
		Driver: &model.Employee{ID: "emp-1", Name: "João"},
		Truck:  &model.Truck{ID: "t1", Plate: "ABC1D23", Model: "Volvo FH"},
	}

	out, err := NewGenerator().DeliveryInvoice(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// Cabeçalho PDF.
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestDeliveryInvoice_UnassignedDelivery(t *testing.T) {
	out, err := NewGenerator().DeliveryInvoice(InvoiceData{
		Delivery: model.Delivery{ID: "d1", TrackingCode: "ENT-X", Status: model.StatusPendente},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
