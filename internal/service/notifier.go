package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"frota-service/internal/broker"
	"frota-service/internal/metrics"
	"frota-service/internal/model"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Interfaces estreitas sobre os repositórios; o propagador só precisa disto
// e os testes trocam por implementações em memória.
type notificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
}

type employeeFinder interface {
	GetByID(ctx context.Context, id string) (*model.Employee, error)
}

type truckFinder interface {
	GetByID(ctx context.Context, id string) (*model.Truck, error)
}

type eventPublisher interface {
	Publish(employeeID string, evt broker.Event)
}

// Notifier propaga mudanças de atribuição de entregas e rotas: grava até duas
// notificações (motorista e funcionário, sem duplicar quando coincidem) e
// publica no broker. Alvo não resolvível é pulado em silêncio, de propósito.
type Notifier struct {
	notifications notificationStore
	employees     employeeFinder
	trucks        truckFinder
	events        eventPublisher
	log           zerolog.Logger
}

func NewNotifier(
	notifications notificationStore,
	employees employeeFinder,
	trucks truckFinder,
	events eventPublisher,
	log zerolog.Logger,
) *Notifier {
	return &Notifier{
		notifications: notifications,
		employees:     employees,
		trucks:        trucks,
		events:        events,
		log:           log,
	}
}

// DeliveryAssignmentChanged emite notificações para os alvos cuja atribuição
// mudou (ou todos os atribuídos, quando a entrega acabou de ser criada).
func (n *Notifier) DeliveryAssignmentChanged(ctx context.Context, delivery *model.Delivery, prevDriverID, prevEmployeeID *string, action string) {
	targets := changedTargets(delivery.DriverID, delivery.EmployeeID, prevDriverID, prevEmployeeID, action)
	if len(targets) == 0 {
		return
	}

	relatedType := model.RelatedDelivery
	for _, target := range targets {
		n.emit(ctx, target, &model.Notification{
			Type:        "atribuicao_entrega",
			Title:       fmt.Sprintf("Entrega %s atribuída a você", delivery.TrackingCode),
			Message:     n.deliveryMessage(ctx, delivery),
			Priority:    "normal",
			RelatedID:   &delivery.ID,
			RelatedType: &relatedType,
			Metadata:    map[string]string{"tracking_code": delivery.TrackingCode, "action": action},
		})
	}
}

// RouteAssignmentChanged é o equivalente para rotas.
func (n *Notifier) RouteAssignmentChanged(ctx context.Context, route *model.Route, prevDriverID, prevEmployeeID *string, action string) {
	targets := changedTargets(route.DriverID, route.EmployeeID, prevDriverID, prevEmployeeID, action)
	if len(targets) == 0 {
		return
	}

	relatedType := model.RelatedRoute
	for _, target := range targets {
		n.emit(ctx, target, &model.Notification{
			Type:        "atribuicao_rota",
			Title:       fmt.Sprintf("Rota %s atribuída a você", route.Code),
			Message:     n.routeMessage(ctx, route),
			Priority:    "normal",
			RelatedID:   &route.ID,
			RelatedType: &relatedType,
			Metadata:    map[string]string{"code": route.Code, "action": action},
		})
	}
}

// changedTargets decide quem notificar. A porta é por registro: se motorista
// ou funcionário mudou (ou o registro acabou de ser criado), todos os alvos
// atuais não nulos recebem aviso; os valores anteriores nunca entram na lista.
// Motorista e funcionário iguais rendem um único alvo.
func changedTargets(driverID, employeeID, prevDriverID, prevEmployeeID *string, action string) []string {
	if action != ActionCreated &&
		sameRef(driverID, prevDriverID) &&
		sameRef(employeeID, prevEmployeeID) {
		return nil
	}

	var targets []string
	add := func(id *string) {
		if id == nil || *id == "" {
			return
		}
		for _, existing := range targets {
			if existing == *id {
				return
			}
		}
		targets = append(targets, *id)
	}

	add(driverID)
	add(employeeID)
	return targets
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return strings.TrimSpace(*a) == strings.TrimSpace(*b)
}

func (n *Notifier) emit(ctx context.Context, targetID string, notification *model.Notification) {
	if _, err := n.employees.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Alvo inexistente (id obsoleto): pula sem erro visível.
			n.log.Debug().Str("target", targetID).Msg("notification target not found, skipping")
			return
		}
		n.log.Warn().Err(err).Str("target", targetID).Msg("notification target lookup failed")
		return
	}

	notification.TargetEmployeeID = targetID
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.log.Warn().Err(err).Str("target", targetID).Msg("failed to persist notification")
		return
	}

	metrics.NotificationsEmitted.WithLabelValues(notification.Type).Inc()
	if n.events != nil {
		n.events.Publish(targetID, broker.Event{Type: notification.Type, Notification: *notification})
	}
}

// O corpo é uma string única com quebras de linha: o painel renderiza o texto
// na íntegra preservando as quebras.
func (n *Notifier) deliveryMessage(ctx context.Context, delivery *model.Delivery) string {
	lines := []string{
		fmt.Sprintf("Entrega %s", delivery.TrackingCode),
		fmt.Sprintf("Caminhão: %s", n.truckLabel(ctx, delivery.TruckID)),
		fmt.Sprintf("Origem: %s", cityLabel(delivery.OriginCity, delivery.OriginState)),
		fmt.Sprintf("Destino: %s", cityLabel(delivery.DestinationCity, delivery.DestinationState)),
	}
	if delivery.ScheduledDate != nil {
		lines = append(lines, fmt.Sprintf("Agendada para: %s", delivery.ScheduledDate.Format("02/01/2006")))
	}
	return strings.Join(lines, "\n")
}

func (n *Notifier) routeMessage(ctx context.Context, route *model.Route) string {
	lines := []string{
		fmt.Sprintf("Rota %s", route.Code),
		fmt.Sprintf("Caminhão: %s", n.truckLabel(ctx, route.TruckID)),
		fmt.Sprintf("Origem: %s", cityLabel(route.OriginCity, route.OriginState)),
		fmt.Sprintf("Destinos: %s", destinationsLabel(route.Destinations)),
	}
	if route.ScheduledDate != nil {
		lines = append(lines, fmt.Sprintf("Agendada para: %s", route.ScheduledDate.Format("02/01/2006")))
	}
	return strings.Join(lines, "\n")
}

func (n *Notifier) truckLabel(ctx context.Context, truckID *string) string {
	if truckID == nil || *truckID == "" {
		return "N/A"
	}
	truck, err := n.trucks.GetByID(ctx, *truckID)
	if err != nil {
		return "N/A"
	}
	if truck.Model == "" {
		return truck.Plate
	}
	return fmt.Sprintf("%s (%s)", truck.Plate, truck.Model)
}

func cityLabel(city, state string) string {
	if city == "" {
		return "N/A"
	}
	if state == "" {
		return city
	}
	return city + "/" + state
}

func destinationsLabel(destinations []model.Destination) string {
	if len(destinations) == 0 {
		return "N/A"
	}
	first := cityLabel(destinations[0].City, destinations[0].State)
	if len(destinations) == 1 {
		return first
	}
	return fmt.Sprintf("%s e mais %d", first, len(destinations)-1)
}
