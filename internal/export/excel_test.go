package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"frota-service/internal/model"
)

func TestDeliveriesReport(t *testing.T) {
	driverID := "emp-1"
	truckID := "t1"
	scheduled := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	deliveries := []model.Delivery{
		{
			ID:              "d1",
			TrackingCode:    "ENT-AABBCC11",
			Status:          model.StatusPendente,
			CustomerName:    "Construtora Alfa",
			OriginCity:      "Campinas",
			OriginState:     "SP",
			DestinationCity: "Itu",
			DriverID:        &driverID,
			TruckID:         &truckID,
			CargoWeightKg:   1500,
			PaymentValue:    3200.50,
			ScheduledDate:   &scheduled,
		},
		{
			ID:           "d2",
			TrackingCode: "ENT-X",
			// Alias legado conta como entregue no resumo.
			Status:       "concluida",
			CustomerName: "Construtora Beta",
		},
	}
	employees := map[string]model.Employee{driverID: {ID: driverID, Name: "João"}}
	trucks := map[string]model.Truck{truckID: {ID: truckID, Plate: "ABC1D23"}}

	data, err := NewGenerator().DeliveriesReport(deliveries, employees, trucks)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	assert.ElementsMatch(t, []string{"Resumo", "Entregas"}, file.GetSheetList())

	total, err := file.GetCellValue("Resumo", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	code, err := file.GetCellValue("Entregas", "A2")
	require.NoError(t, err)
	assert.Equal(t, "ENT-AABBCC11", code)

	driver, err := file.GetCellValue("Entregas", "F2")
	require.NoError(t, err)
	assert.Equal(t, "João", driver)

	plate, err := file.GetCellValue("Entregas", "G2")
	require.NoError(t, err)
	assert.Equal(t, "ABC1D23", plate)

	status, err := file.GetCellValue("Entregas", "B3")
	require.NoError(t, err)
	assert.Equal(t, "entregue", status)
}

func TestDeliveriesReport_Empty(t *testing.T) {
	data, err := NewGenerator().DeliveriesReport(nil, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
