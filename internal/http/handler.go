package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"frota-service/internal/broker"
	"frota-service/internal/client"
	"frota-service/internal/http/middleware"
	"frota-service/internal/model"
	"frota-service/internal/repository"
	"frota-service/internal/service"
)

type Handler struct {
	authService         *service.AuthService
	employeeService     *service.EmployeeService
	truckService        *service.TruckService
	deliveryService     *service.DeliveryService
	routeService        *service.RouteService
	assignmentService   *service.AssignmentService
	notificationService *service.NotificationService
	messageService      *service.MessageService
	dashboardService    *service.DashboardService
	reportService       *service.ReportService
	audit               *service.AuditRecorder
	cepClient           *client.CEPClient
	events              *broker.Broker
	log                 zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	employeeService *service.EmployeeService,
	truckService *service.TruckService,
	deliveryService *service.DeliveryService,
	routeService *service.RouteService,
	assignmentService *service.AssignmentService,
	notificationService *service.NotificationService,
	messageService *service.MessageService,
	dashboardService *service.DashboardService,
	reportService *service.ReportService,
	audit *service.AuditRecorder,
	cepClient *client.CEPClient,
	events *broker.Broker,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:         authService,
		employeeService:     employeeService,
		truckService:        truckService,
		deliveryService:     deliveryService,
		routeService:        routeService,
		assignmentService:   assignmentService,
		notificationService: notificationService,
		messageService:      messageService,
		dashboardService:    dashboardService,
		reportService:       reportService,
		audit:               audit,
		cepClient:           cepClient,
		events:              events,
		log:                 log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc, publicLimiter gin.HandlerFunc) {
	public := r.Group("/auth")
	public.Use(publicLimiter)
	{
		public.POST("/login", h.login)
		public.POST("/access-requests", h.submitAccessRequest)
	}

	protected := r.Group("/")
	protected.Use(authMiddleware)

	gestor := protected.Group("/gestor")
	{
		gestor.GET("/employees", h.listEmployees)
		gestor.POST("/employees", h.createEmployee)
		gestor.GET("/employees/:id", h.getEmployee)
		gestor.PUT("/employees/:id", h.updateEmployee)
		gestor.DELETE("/employees/:id", h.deleteEmployee)

		gestor.GET("/trucks", h.listTrucks)
		gestor.POST("/trucks", h.createTruck)
		gestor.GET("/trucks/:id", h.getTruck)
		gestor.PUT("/trucks/:id", h.updateTruck)
		gestor.DELETE("/trucks/:id", h.deleteTruck)

		gestor.GET("/deliveries", h.listDeliveries)
		gestor.POST("/deliveries", h.createDelivery)
		gestor.GET("/deliveries/:id", h.getDelivery)
		gestor.PUT("/deliveries/:id", h.updateDelivery)
		gestor.PUT("/deliveries/:id/status", h.updateDeliveryStatus)
		gestor.DELETE("/deliveries/:id", h.deleteDelivery)

		gestor.GET("/routes", h.listRoutes)
		gestor.POST("/routes", h.createRoute)
		gestor.GET("/routes/:id", h.getRoute)
		gestor.PUT("/routes/:id", h.updateRoute)
		gestor.PUT("/routes/:id/status", h.updateRouteStatus)
		gestor.DELETE("/routes/:id", h.deleteRoute)

		gestor.GET("/access-requests", h.listAccessRequests)
		gestor.PUT("/access-requests/:id/approve", h.approveAccessRequest)
		gestor.PUT("/access-requests/:id/reject", h.rejectAccessRequest)

		gestor.GET("/audit-logs", h.listAuditLogs)
		gestor.GET("/dashboard/summary", h.dashboardSummary)

		gestor.GET("/reports/deliveries.xlsx", h.deliveriesReport)
		gestor.GET("/deliveries/:id/invoice.pdf", h.deliveryInvoice)
	}

	driver := protected.Group("/driver")
	{
		driver.GET("/assignment", h.currentAssignment)
		driver.GET("/deliveries", h.listDeliveries)
		driver.GET("/deliveries/:id", h.getDelivery)
		driver.PUT("/deliveries/:id/status", h.updateDeliveryStatus)
		driver.GET("/routes", h.listRoutes)
		driver.GET("/routes/:id", h.getRoute)
		driver.PUT("/routes/:id/status", h.updateRouteStatus)
	}

	// Comuns a qualquer papel autenticado.
	protected.GET("/me", h.me)
	protected.PUT("/me/profile", h.updateProfile)

	protected.GET("/notifications", h.listNotifications)
	protected.GET("/notifications/unread-count", h.unreadCount)
	protected.PUT("/notifications/:id/read", h.markNotificationRead)
	protected.PUT("/notifications/read-all", h.markAllNotificationsRead)
	protected.GET("/notifications/stream", h.notificationStream)

	protected.GET("/messages", h.listMessages)
	protected.POST("/messages", h.sendMessage)
	protected.PUT("/messages/:id/read", h.markMessageRead)

	protected.GET("/cep/:code", h.lookupCEP)

	// Aliases de leitura mantidos para os consumidores do painel antigo.
	api := protected.Group("/api")
	{
		api.GET("/users", h.listEmployees)
		api.GET("/vehicles", h.listTrucks)
		api.GET("/routes", h.listRoutes)
	}
}

// Auth

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) submitAccessRequest(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		Email         string `json:"email" binding:"required"`
		Phone         string `json:"phone"`
		RequestedRole string `json:"requested_role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	request, err := h.authService.SubmitAccessRequest(c.Request.Context(), service.AccessRequestInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		RequestedRole: model.Role(req.RequestedRole),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(request))
}

func (h *Handler) listAccessRequests(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var status *model.AccessRequestStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s := model.AccessRequestStatus(raw)
		status = &s
	}

	requests, err := h.authService.ListAccessRequests(c.Request.Context(), principal, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(requests))
}

func (h *Handler) approveAccessRequest(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid access request id"))
		return
	}

	var req struct {
		TempPassword string `json:"temp_password" binding:"required"`
		Response     string `json:"response"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	employee, err := h.authService.ApproveAccessRequest(c.Request.Context(), principal, id, req.TempPassword, req.Response)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(employee))
}

func (h *Handler) rejectAccessRequest(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid access request id"))
		return
	}

	var req struct {
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.authService.RejectAccessRequest(c.Request.Context(), principal, id, req.Response); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "access request rejected"}))
}

// Employees

type employeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

func (r employeeRequest) toInput() service.EmployeeInput {
	return service.EmployeeInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Role:     model.Role(r.Role),
		Status:   model.EmployeeStatus(r.Status),
		Password: r.Password,
	}
}

func (h *Handler) createEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(employee))
}

func (h *Handler) getEmployee(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid employee id"))
		return
	}

	employee, err := h.employeeService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employee))
}

func (h *Handler) listEmployees(c *gin.Context) {
	filter := repository.EmployeeListFilter{}

	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		role := model.Role(raw)
		filter.Role = &role
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.EmployeeStatus(raw)
		filter.Status = &status
	}

	employees, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employees))
}

func (h *Handler) updateEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid employee id"))
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employee))
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid employee id"))
		return
	}

	if err := h.employeeService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Trucks

type truckRequest struct {
	Plate     string       `json:"plate"`
	Model     string       `json:"model"`
	Year      int          `json:"year"`
	MileageKm float64      `json:"mileage_km"`
	Status    string       `json:"status"`
	DriverID  model.FlexID `json:"driver_id"`
	Version   int64        `json:"version"`
}

func (r truckRequest) toInput() service.TruckInput {
	return service.TruckInput{
		Plate:     r.Plate,
		Model:     r.Model,
		Year:      r.Year,
		MileageKm: r.MileageKm,
		Status:    model.TruckStatus(r.Status),
		DriverID:  r.DriverID,
	}
}

func (h *Handler) createTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(truck))
}

func (h *Handler) getTruck(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid truck id"))
		return
	}

	truck, err := h.truckService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(truck))
}

func (h *Handler) listTrucks(c *gin.Context) {
	filter := repository.TruckListFilter{}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.TruckStatus(raw)
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("driver_id")); raw != "" {
		filter.DriverID = &raw
	}

	trucks, err := h.truckService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trucks))
}

func (h *Handler) updateTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid truck id"))
		return
	}

	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	truck, err := h.truckService.Update(c.Request.Context(), principal, id, req.toInput(), req.Version)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(truck))
}

func (h *Handler) deleteTruck(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid truck id"))
		return
	}

	if err := h.truckService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Deliveries

type deliveryRequest struct {
	TrackingCode     string       `json:"tracking_code"`
	TruckID          model.FlexID `json:"truck_id"`
	DriverID         model.FlexID `json:"driver_id"`
	EmployeeID       model.FlexID `json:"employee_id"`
	Status           string       `json:"status"`
	ScheduledDate    string       `json:"scheduled_date"`
	CustomerName     string       `json:"customer_name"`
	CustomerDocument string       `json:"customer_document"`
	CustomerPhone    string       `json:"customer_phone"`
	OriginCity       string       `json:"origin_city"`
	OriginState      string       `json:"origin_state"`
	DestinationCity  string       `json:"destination_city"`
	DestinationState string       `json:"destination_state"`
	CargoDescription string       `json:"cargo_description"`
	CargoWeightKg    float64      `json:"cargo_weight_kg"`
	PaymentMethod    string       `json:"payment_method"`
	PaymentValue     float64      `json:"payment_value"`
	Version          int64        `json:"version"`
}

func (r deliveryRequest) toInput() (service.DeliveryInput, error) {
	input := service.DeliveryInput{
		TrackingCode:     r.TrackingCode,
		TruckID:          r.TruckID,
		DriverID:         r.DriverID,
		EmployeeID:       r.EmployeeID,
		Status:           model.WorkStatus(r.Status),
		CustomerName:     r.CustomerName,
		CustomerDocument: r.CustomerDocument,
		CustomerPhone:    r.CustomerPhone,
		OriginCity:       r.OriginCity,
		OriginState:      r.OriginState,
		DestinationCity:  r.DestinationCity,
		DestinationState: r.DestinationState,
		CargoDescription: r.CargoDescription,
		CargoWeightKg:    r.CargoWeightKg,
		PaymentMethod:    r.PaymentMethod,
		PaymentValue:     r.PaymentValue,
	}
	if raw := strings.TrimSpace(r.ScheduledDate); raw != "" {
		parsed, err := parseTime(raw)
		if err != nil {
			return input, err
		}
		input.ScheduledDate = &parsed
	}
	return input, nil
}

func (h *Handler) createDelivery(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	delivery, err := h.deliveryService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(delivery))
}

func (h *Handler) getDelivery(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid delivery id"))
		return
	}

	delivery, err := h.deliveryService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(delivery))
}

func (h *Handler) listDeliveries(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.DeliveryListFilter{}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.WorkStatus(raw)
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("driver_id")); raw != "" {
		filter.DriverID = &raw
	}
	if raw := strings.TrimSpace(c.Query("employee_id")); raw != "" {
		filter.EmployeeID = &raw
	}
	if raw := strings.TrimSpace(c.Query("truck_id")); raw != "" {
		filter.TruckID = &raw
	}
	if raw := strings.TrimSpace(c.Query("scheduled_from")); raw != "" {
		if parsed, err := parseTime(raw); err == nil {
			filter.ScheduledFrom = &parsed
		}
	}
	if raw := strings.TrimSpace(c.Query("scheduled_to")); raw != "" {
		if parsed, err := parseTime(raw); err == nil {
			filter.ScheduledTo = &parsed
		}
	}

	deliveries, err := h.deliveryService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(deliveries))
}

func (h *Handler) updateDelivery(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid delivery id"))
		return
	}

	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	delivery, err := h.deliveryService.Update(c.Request.Context(), principal, id, input, req.Version)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(delivery))
}

func (h *Handler) updateDeliveryStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid delivery id"))
		return
	}

	var req struct {
		Status  string `json:"status" binding:"required"`
		Version int64  `json:"version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	delivery, err := h.deliveryService.UpdateStatus(c.Request.Context(), principal, id, model.WorkStatus(req.Status), req.Version)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(delivery))
}

func (h *Handler) deleteDelivery(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid delivery id"))
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Routes

type routeRequest struct {
	Code            string              `json:"code"`
	TruckID         model.FlexID        `json:"truck_id"`
	DriverID        model.FlexID        `json:"driver_id"`
	EmployeeID      model.FlexID        `json:"employee_id"`
	AssignedDrivers []model.FlexID      `json:"assigned_drivers"`
	OriginCity      string              `json:"origin_city"`
	OriginState     string              `json:"origin_state"`
	Destinations    []model.Destination `json:"destinations"`
	ScheduledDate   string              `json:"scheduled_date"`
	Version         int64               `json:"version"`
}

func (r routeRequest) toInput() (service.RouteInput, error) {
	input := service.RouteInput{
		Code:            r.Code,
		TruckID:         r.TruckID,
		DriverID:        r.DriverID,
		EmployeeID:      r.EmployeeID,
		AssignedDrivers: r.AssignedDrivers,
		OriginCity:      r.OriginCity,
		OriginState:     r.OriginState,
		Destinations:    r.Destinations,
	}
	if raw := strings.TrimSpace(r.ScheduledDate); raw != "" {
		parsed, err := parseTime(raw)
		if err != nil {
			return input, err
		}
		input.ScheduledDate = &parsed
	}
	return input, nil
}

func (h *Handler) createRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	route, err := h.routeService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(route))
}

func (h *Handler) getRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid route id"))
		return
	}

	details, err := h.routeService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(details))
}

func (h *Handler) listRoutes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.RouteListFilter{}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.WorkStatus(raw)
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("driver_id")); raw != "" {
		filter.DriverID = &raw
	}
	if raw := strings.TrimSpace(c.Query("truck_id")); raw != "" {
		filter.TruckID = &raw
	}

	routes, err := h.routeService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(routes))
}

func (h *Handler) updateRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid route id"))
		return
	}

	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	route, err := h.routeService.Update(c.Request.Context(), principal, id, input, req.Version)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(route))
}

func (h *Handler) updateRouteStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid route id"))
		return
	}

	var req struct {
		Status  string `json:"status" binding:"required"`
		Version int64  `json:"version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	route, err := h.routeService.UpdateStatus(c.Request.Context(), principal, id, model.WorkStatus(req.Status), req.Version)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(route))
}

func (h *Handler) deleteRoute(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid route id"))
		return
	}

	if err := h.routeService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Driver

func (h *Handler) currentAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	assignment, err := h.assignmentService.CurrentFor(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignment))
}

// Profile

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	employee, err := h.employeeService.Get(c.Request.Context(), principal.EmployeeID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employee))
}

func (h *Handler) updateProfile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Name     string  `json:"name"`
		Phone    string  `json:"phone"`
		PhotoURL *string `json:"photo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateProfile(c.Request.Context(), principal, service.ProfileInput{
		Name:     req.Name,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(employee))
}

// Notifications

func (h *Handler) listNotifications(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	notifications, err := h.notificationService.ListMine(c.Request.Context(), principal, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(notifications))
}

func (h *Handler) unreadCount(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"unread": count}))
}

func (h *Handler) markNotificationRead(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid notification id"))
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "notification read"}))
}

func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), principal); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "all notifications read"}))
}

// Messages

func (h *Handler) sendMessage(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		ToEmployeeID model.FlexID `json:"to_employee_id"`
		Subject      string       `json:"subject"`
		Body         string       `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), principal, service.MessageInput{
		ToEmployeeID: req.ToEmployeeID,
		Subject:      req.Subject,
		Body:         req.Body,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(message))
}

func (h *Handler) listMessages(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	messages, err := h.messageService.ListMine(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(messages))
}

func (h *Handler) markMessageRead(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid message id"))
		return
	}

	if err := h.messageService.MarkRead(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "message read"}))
}

// Dashboard, audit, reports

func (h *Handler) dashboardSummary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) listAuditLogs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	scope := model.AuditScopeSystem
	if raw := strings.TrimSpace(c.Query("scope")); raw != "" {
		scope = model.AuditScope(raw)
	}

	limit := 100
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.audit.List(c.Request.Context(), principal, scope, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(entries))
}

func (h *Handler) deliveriesReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.DeliveryListFilter{}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.WorkStatus(raw)
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("scheduled_from")); raw != "" {
		if parsed, err := parseTime(raw); err == nil {
			filter.ScheduledFrom = &parsed
		}
	}
	if raw := strings.TrimSpace(c.Query("scheduled_to")); raw != "" {
		if parsed, err := parseTime(raw); err == nil {
			filter.ScheduledTo = &parsed
		}
	}

	workbook, err := h.reportService.DeliveriesWorkbook(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="entregas.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func (h *Handler) deliveryInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid delivery id"))
		return
	}

	document, err := h.reportService.DeliveryInvoice(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="comprovante.pdf"`)
	c.Data(http.StatusOK, "application/pdf", document)
}

// CEP

func (h *Handler) lookupCEP(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))

	address, err := h.cepClient.Lookup(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, client.ErrInvalidCEP) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway, errorResponse("cep service unavailable"))
		return
	}
	if address == nil {
		c.JSON(http.StatusNotFound, errorResponse("cep not found"))
		return
	}

	c.JSON(http.StatusOK, successResponse(address))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid time format")
}
