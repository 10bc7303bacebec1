package service

import (
	"context"

	"frota-service/internal/model"
	"frota-service/internal/repository"
	"frota-service/internal/utils"
)

// Assignment é o resultado da resolução: caminhão, entrega e rota correntes
// de um ator. Qualquer campo pode ser nulo quando não há atribuição.
type Assignment struct {
	Truck    *model.Truck    `json:"truck"`
	Delivery *model.Delivery `json:"delivery"`
	Route    *model.Route    `json:"route"`
}

// ResolveAssignment determina o caminhão, a entrega e a rota correntes do
// ator dadas as coleções completas. Função pura; a precedência é fixa:
//
//  1. rota candidata: rotas não terminais atribuídas ao ator (titular,
//     auxiliar ou lista de motoristas), preferindo status ativo, senão a mais
//     recente;
//  2. entrega candidata: mesmo critério sobre as entregas;
//  3. caminhão: atribuição direta de motorista vence sempre; senão o caminhão
//     da entrega candidata; senão o da rota candidata;
//  4. se nenhuma rota foi achada no passo 1 mas há caminhão, recupera a rota
//     ativa que referencia esse caminhão (relação implícita via caminhão).
func ResolveAssignment(actorID string, trucks []model.Truck, deliveries []model.Delivery, routes []model.Route) Assignment {
	actorID = utils.NormalizeID(actorID)
	if actorID == "" {
		return Assignment{}
	}

	route := pickRoute(routes, func(r model.Route) bool {
		return routeAssignedTo(r, actorID)
	})

	delivery := pickDelivery(deliveries, actorID)

	truck := resolveTruck(actorID, trucks, delivery, route)

	if route == nil && truck != nil {
		route = pickRoute(routes, func(r model.Route) bool {
			return r.TruckID != nil && utils.SameID(*r.TruckID, truck.ID)
		})
	}

	return Assignment{Truck: truck, Delivery: delivery, Route: route}
}

func routeAssignedTo(r model.Route, actorID string) bool {
	if r.DriverID != nil && utils.SameID(*r.DriverID, actorID) {
		return true
	}
	if r.EmployeeID != nil && utils.SameID(*r.EmployeeID, actorID) {
		return true
	}
	for _, id := range r.AssignedDrivers {
		if utils.SameID(id, actorID) {
			return true
		}
	}
	return false
}

// pickRoute filtra rotas não terminais aceitas pelo predicado, preferindo as
// de status ativo; sem nenhuma ativa, vale a mais recente por criação (empate
// resolvido pela ordem estável da coleção).
func pickRoute(routes []model.Route, match func(model.Route) bool) *model.Route {
	var active, fallback *model.Route
	for i := range routes {
		r := &routes[i]
		if r.Status.IsTerminal() || !match(*r) {
			continue
		}
		if r.Status.IsActive() {
			if active == nil {
				active = r
			}
			continue
		}
		if fallback == nil || r.CreatedAt.After(fallback.CreatedAt) {
			fallback = r
		}
	}
	if active != nil {
		return active
	}
	return fallback
}

func pickDelivery(deliveries []model.Delivery, actorID string) *model.Delivery {
	var active, fallback *model.Delivery
	for i := range deliveries {
		d := &deliveries[i]
		if d.Status.IsTerminal() {
			continue
		}
		assigned := (d.DriverID != nil && utils.SameID(*d.DriverID, actorID)) ||
			(d.EmployeeID != nil && utils.SameID(*d.EmployeeID, actorID))
		if !assigned {
			continue
		}
		if d.Status.IsActive() {
			if active == nil {
				active = d
			}
			continue
		}
		if fallback == nil || d.CreatedAt.After(fallback.CreatedAt) {
			fallback = d
		}
	}
	if active != nil {
		return active
	}
	return fallback
}

func resolveTruck(actorID string, trucks []model.Truck, delivery *model.Delivery, route *model.Route) *model.Truck {
	// Atribuição direta de motorista vence sempre.
	for i := range trucks {
		t := &trucks[i]
		if t.DriverID != nil && utils.SameID(*t.DriverID, actorID) {
			return t
		}
	}
	if delivery != nil && delivery.TruckID != nil {
		if t := truckByID(trucks, *delivery.TruckID); t != nil {
			return t
		}
	}
	if route != nil && route.TruckID != nil {
		if t := truckByID(trucks, *route.TruckID); t != nil {
			return t
		}
	}
	return nil
}

func truckByID(trucks []model.Truck, id string) *model.Truck {
	for i := range trucks {
		if utils.SameID(trucks[i].ID, id) {
			return &trucks[i]
		}
	}
	return nil
}

// AssignmentService carrega as coleções e delega à resolução pura.
type AssignmentService struct {
	truckRepo    *repository.TruckRepository
	deliveryRepo *repository.DeliveryRepository
	routeRepo    *repository.RouteRepository
}

func NewAssignmentService(
	truckRepo *repository.TruckRepository,
	deliveryRepo *repository.DeliveryRepository,
	routeRepo *repository.RouteRepository,
) *AssignmentService {
	return &AssignmentService{
		truckRepo:    truckRepo,
		deliveryRepo: deliveryRepo,
		routeRepo:    routeRepo,
	}
}

// CurrentFor resolve a atribuição corrente do próprio ator autenticado.
// Ausência de atribuição não é erro: devolve os três campos nulos.
func (s *AssignmentService) CurrentFor(ctx context.Context, principal model.Principal) (Assignment, error) {
	trucks, err := s.truckRepo.List(ctx, repository.TruckListFilter{})
	if err != nil {
		return Assignment{}, err
	}
	deliveries, err := s.deliveryRepo.List(ctx, repository.DeliveryListFilter{})
	if err != nil {
		return Assignment{}, err
	}
	routes, err := s.routeRepo.List(ctx, repository.RouteListFilter{})
	if err != nil {
		return Assignment{}, err
	}

	return ResolveAssignment(principal.EmployeeID, trucks, deliveries, routes), nil
}
