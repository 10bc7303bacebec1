package main

import (
	"context"
	"fmt"
	"os"

	"frota-service/internal/auth"
	"frota-service/internal/broker"
	"frota-service/internal/client"
	"frota-service/internal/config"
	"frota-service/internal/db"
	httphandler "frota-service/internal/http"
	"frota-service/internal/http/middleware"
	"frota-service/internal/logger"
	"frota-service/internal/repository"
	"frota-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	employeeRepo := repository.NewEmployeeRepository(database)
	truckRepo := repository.NewTruckRepository(database)
	deliveryRepo := repository.NewDeliveryRepository(database)
	routeRepo := repository.NewRouteRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	messageRepo := repository.NewMessageRepository(database)
	auditRepo := repository.NewAuditRepository(database)
	requestRepo := repository.NewAccessRequestRepository(database)

	events := broker.New()
	var publisher interface {
		Publish(employeeID string, evt broker.Event)
	} = events
	if cfg.Redis.URL != "" {
		bridge, err := broker.NewRedisBridge(cfg.Redis.URL, events, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect redis")
		}
		go bridge.Run(context.Background())
		publisher = bridge
	}

	audit := service.NewAuditRecorder(auditRepo, appLogger)
	notifier := service.NewNotifier(notificationRepo, employeeRepo, truckRepo, publisher, appLogger)

	tokens := auth.NewManager(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)

	authService := service.NewAuthService(employeeRepo, requestRepo, tokens, audit)
	employeeService := service.NewEmployeeService(employeeRepo, audit)
	truckService := service.NewTruckService(truckRepo, employeeRepo, audit)
	deliveryService := service.NewDeliveryService(deliveryRepo, truckRepo, employeeRepo, notifier, audit)
	routeService := service.NewRouteService(routeRepo, truckRepo, employeeRepo, notifier, audit)
	assignmentService := service.NewAssignmentService(truckRepo, deliveryRepo, routeRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	messageService := service.NewMessageService(messageRepo, employeeRepo)
	dashboardService := service.NewDashboardService(truckRepo, deliveryRepo, routeRepo)
	reportService := service.NewReportService(deliveryRepo, employeeRepo, truckRepo)

	cepClient := client.NewCEPClient(cfg)

	handler := httphandler.NewHandler(
		authService,
		employeeService,
		truckService,
		deliveryService,
		routeService,
		assignmentService,
		notificationService,
		messageService,
		dashboardService,
		reportService,
		audit,
		cepClient,
		events,
		appLogger,
	)

	authMiddleware := middleware.Auth(tokens)
	publicLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware()
	router := httphandler.NewRouter(handler, authMiddleware, publicLimiter, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting frota service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
