package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"frota-service/internal/export"
	"frota-service/internal/model"
	"frota-service/internal/pdf"
	"frota-service/internal/repository"
)

// ReportService produz os documentos exportáveis do painel: planilha de
// entregas e comprovante de entrega em PDF.
type ReportService struct {
	deliveryRepo *repository.DeliveryRepository
	employeeRepo *repository.EmployeeRepository
	truckRepo    *repository.TruckRepository
	excel        *export.Generator
	pdf          *pdf.Generator
}

func NewReportService(
	deliveryRepo *repository.DeliveryRepository,
	employeeRepo *repository.EmployeeRepository,
	truckRepo *repository.TruckRepository,
) *ReportService {
	return &ReportService{
		deliveryRepo: deliveryRepo,
		employeeRepo: employeeRepo,
		truckRepo:    truckRepo,
		excel:        export.NewGenerator(),
		pdf:          pdf.NewGenerator(),
	}
}

func (s *ReportService) DeliveriesWorkbook(ctx context.Context, principal model.Principal, filter repository.DeliveryListFilter) ([]byte, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}

	deliveries, err := s.deliveryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, repository.EmployeeListFilter{})
	if err != nil {
		return nil, err
	}
	employeeIndex := make(map[string]model.Employee, len(employees))
	for _, e := range employees {
		employeeIndex[e.ID] = e
	}

	trucks, err := s.truckRepo.List(ctx, repository.TruckListFilter{})
	if err != nil {
		return nil, err
	}
	truckIndex := make(map[string]model.Truck, len(trucks))
	for _, t := range trucks {
		truckIndex[t.ID] = t
	}

	return s.excel.DeliveriesReport(deliveries, employeeIndex, truckIndex)
}

func (s *ReportService) DeliveryInvoice(ctx context.Context, principal model.Principal, id string) ([]byte, error) {
	if !principal.IsGestor() {
		return nil, ErrPermissionDenied
	}

	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	data := pdf.InvoiceData{Delivery: *delivery}
	if delivery.DriverID != nil {
		if driver, err := s.employeeRepo.GetByID(ctx, *delivery.DriverID); err == nil {
			data.Driver = driver
		}
	}
	if delivery.TruckID != nil {
		if truck, err := s.truckRepo.GetByID(ctx, *delivery.TruckID); err == nil {
			data.Truck = truck
		}
	}

	return s.pdf.DeliveryInvoice(data)
}
