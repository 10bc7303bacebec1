package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"frota-service/internal/model"
)

// Generator monta a planilha de entregas exportada pelo painel do gestor.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// DeliveriesReport gera um workbook com uma aba de resumo por status e uma
// aba detalhada, uma linha por entrega.
func (g *Generator) DeliveriesReport(deliveries []model.Delivery, employees map[string]model.Employee, trucks map[string]model.Truck) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumo"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, deliveries); err != nil {
		return nil, err
	}

	detailSheet := "Entregas"
	if _, err := file.NewSheet(detailSheet); err != nil {
		return nil, err
	}
	if err := g.writeDetail(file, detailSheet, deliveries, employees, trucks); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, deliveries []model.Delivery) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	counts := map[model.WorkStatus]int{}
	var totalWeight, totalValue float64
	for _, d := range deliveries {
		counts[model.NormalizeStatus(d.Status)]++
		totalWeight += d.CargoWeightKg
		totalValue += d.PaymentValue
	}

	set("A1", "Relatório de entregas")
	set("A2", "Gerado em")
	set("B2", time.Now().Format("02/01/2006 15:04"))
	set("A3", "Total de entregas")
	set("B3", len(deliveries))
	set("A4", "Peso total (kg)")
	set("B4", totalWeight)
	set("A5", "Valor total (R$)")
	set("B5", totalValue)

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Status")
	set(fmt.Sprintf("B%d", tableRow), "Quantidade")
	statuses := []model.WorkStatus{
		model.StatusPendente,
		model.StatusEmCarregamento,
		model.StatusEmPercurso,
		model.StatusEntregue,
	}
	for i, status := range statuses {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), string(status))
		set(fmt.Sprintf("B%d", row), counts[status])
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, deliveries []model.Delivery, employees map[string]model.Employee, trucks map[string]model.Truck) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Código", "Status", "Cliente", "Origem", "Destino",
		"Motorista", "Caminhão", "Peso (kg)", "Valor (R$)", "Agendada", "Entregue em",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for rowIdx, d := range deliveries {
		row := rowIdx + 2
		values := []interface{}{
			d.TrackingCode,
			string(model.NormalizeStatus(d.Status)),
			d.CustomerName,
			cityCell(d.OriginCity, d.OriginState),
			cityCell(d.DestinationCity, d.DestinationState),
			refName(d.DriverID, employees),
			refPlate(d.TruckID, trucks),
			d.CargoWeightKg,
			d.PaymentValue,
			dateCell(d.ScheduledDate),
			dateCell(d.DeliveredAt),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "B", 18)
	_ = file.SetColWidth(sheet, "C", "G", 26)
	_ = file.SetColWidth(sheet, "H", "K", 16)
	return nil
}

func cityCell(city, state string) string {
	if city == "" {
		return ""
	}
	if state == "" {
		return city
	}
	return city + "/" + state
}

func refName(id *string, employees map[string]model.Employee) string {
	if id == nil {
		return ""
	}
	if employee, ok := employees[*id]; ok {
		return employee.Name
	}
	return *id
}

func refPlate(id *string, trucks map[string]model.Truck) string {
	if id == nil {
		return ""
	}
	if truck, ok := trucks[*id]; ok {
		return truck.Plate
	}
	return *id
}

func dateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
