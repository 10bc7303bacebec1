package service

import (
	"context"

	"frota-service/internal/model"
	"frota-service/internal/repository"
)

type DashboardService struct {
	truckRepo    *repository.TruckRepository
	deliveryRepo *repository.DeliveryRepository
	routeRepo    *repository.RouteRepository
}

func NewDashboardService(
	truckRepo *repository.TruckRepository,
	deliveryRepo *repository.DeliveryRepository,
	routeRepo *repository.RouteRepository,
) *DashboardService {
	return &DashboardService{
		truckRepo:    truckRepo,
		deliveryRepo: deliveryRepo,
		routeRepo:    routeRepo,
	}
}

// Summary são os contadores por status exibidos no painel inicial.
type Summary struct {
	Trucks     map[model.TruckStatus]int64 `json:"trucks"`
	Deliveries map[model.WorkStatus]int64  `json:"deliveries"`
	Routes     map[model.WorkStatus]int64  `json:"routes"`
}

func (s *DashboardService) Summary(ctx context.Context, principal model.Principal) (*Summary, error) {
	if principal.IsMotorista() {
		return nil, ErrPermissionDenied
	}

	trucks, err := s.truckRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.deliveryRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := s.routeRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{Trucks: trucks, Deliveries: deliveries, Routes: routes}, nil
}
