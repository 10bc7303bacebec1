package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"frota-service/internal/model"
)

// InvoiceData reúne tudo que a via impressa da entrega precisa. Motorista e
// caminhão são opcionais: entregas ainda não atribuídas saem com "N/A".
type InvoiceData struct {
	Delivery model.Delivery
	Driver   *model.Employee
	Truck    *model.Truck
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// DeliveryInvoice monta o comprovante de entrega em A4 retrato.
func (g *Generator) DeliveryInvoice(data InvoiceData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, tr("Comprovante de Entrega"), "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Código: %s", data.Delivery.TrackingCode)), "", 1, "C", false, 0, "")
	doc.Ln(4)

	g.section(doc, tr, "Entrega", [][2]string{
		{"Status", string(model.NormalizeStatus(data.Delivery.Status))},
		{"Agendada para", formatDate(data.Delivery.ScheduledDate)},
		{"Entregue em", formatDate(data.Delivery.DeliveredAt)},
		{"Origem", cityLine(data.Delivery.OriginCity, data.Delivery.OriginState)},
		{"Destino", cityLine(data.Delivery.DestinationCity, data.Delivery.DestinationState)},
	})

	g.section(doc, tr, "Cliente", [][2]string{
		{"Nome", data.Delivery.CustomerName},
		{"Documento", data.Delivery.CustomerDocument},
		{"Telefone", data.Delivery.CustomerPhone},
	})

	g.section(doc, tr, "Carga", [][2]string{
		{"Descrição", data.Delivery.CargoDescription},
		{"Peso", fmt.Sprintf("%.2f kg", data.Delivery.CargoWeightKg)},
		{"Pagamento", paymentLine(data.Delivery.PaymentMethod, data.Delivery.PaymentValue)},
	})

	g.section(doc, tr, "Transporte", [][2]string{
		{"Motorista", driverLine(data.Driver)},
		{"Caminhão", truckLine(data.Truck)},
	})

	doc.Ln(16)
	doc.SetFont("Arial", "", 9)
	doc.CellFormat(90, 6, tr("_______________________________"), "", 0, "C", false, 0, "")
	doc.CellFormat(90, 6, tr("_______________________________"), "", 1, "C", false, 0, "")
	doc.CellFormat(90, 5, tr("Assinatura do motorista"), "", 0, "C", false, 0, "")
	doc.CellFormat(90, 5, tr("Assinatura do cliente"), "", 1, "C", false, 0, "")

	doc.Ln(8)
	doc.SetFont("Arial", "I", 8)
	doc.CellFormat(0, 5, tr(fmt.Sprintf("Emitido em %s", time.Now().Format("02/01/2006 15:04"))), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) section(doc *gofpdf.Fpdf, tr func(string) string, title string, rows [][2]string) {
	doc.SetFont("Arial", "B", 11)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(0, 7, tr(title), "1", 1, "L", true, 0, "")
	doc.SetFont("Arial", "", 10)
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "N/A"
		}
		doc.CellFormat(50, 6, tr(row[0]), "1", 0, "L", false, 0, "")
		doc.CellFormat(140, 6, tr(value), "1", 1, "L", false, 0, "")
	}
	doc.Ln(4)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

func cityLine(city, state string) string {
	if city == "" {
		return ""
	}
	if state == "" {
		return city
	}
	return city + "/" + state
}

func paymentLine(method string, value float64) string {
	if method == "" && value == 0 {
		return ""
	}
	if method == "" {
		return fmt.Sprintf("R$ %.2f", value)
	}
	return fmt.Sprintf("%s, R$ %.2f", method, value)
}

func driverLine(driver *model.Employee) string {
	if driver == nil {
		return ""
	}
	return driver.Name
}

func truckLine(truck *model.Truck) string {
	if truck == nil {
		return ""
	}
	if truck.Model == "" {
		return truck.Plate
	}
	return fmt.Sprintf("%s (%s)", truck.Plate, truck.Model)
}
