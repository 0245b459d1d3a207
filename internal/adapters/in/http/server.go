// Package http exposes the lifecycle engine over a REST API. Handlers only
// translate between the wire format and commands/queries; all business rules
// live behind the use case layer.
//
// The identity gateway in front of this service authenticates requests and
// forwards the caller's identity in the X-Organization-ID and X-User-ID
// headers.
package http

import (
	"errors"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerOrganizationID = "X-Organization-ID"
	headerUserID         = "X-User-ID"
)

// ErrorResponse is the wire shape of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server wires the REST routes to command and query handlers.
type Server struct {
	receiveOrderHandler            commands.ReceiveOrderCommandHandler
	cancelOrderHandler             commands.CancelOrderCommandHandler
	deleteOrderHandler             commands.DeleteOrderCommandHandler
	editOrderHandler               commands.EditOrderCommandHandler
	createTripsHandler             commands.CreateTripsCommandHandler
	editTripHandler                commands.EditTripCommandHandler
	changeTripStatusHandler        commands.ChangeTripStatusCommandHandler
	resetTripDriverExpensesHandler commands.ResetTripDriverExpensesCommandHandler
	sendDriverNotificationsHandler commands.SendDriverNotificationsCommandHandler

	getOrderHandler               queries.GetOrderQueryHandler
	getOrderTripsHandler          queries.GetOrderTripsQueryHandler
	getUnreadNotificationsHandler queries.GetUnreadNotificationsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	receiveOrderHandler commands.ReceiveOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	editOrderHandler commands.EditOrderCommandHandler,
	createTripsHandler commands.CreateTripsCommandHandler,
	editTripHandler commands.EditTripCommandHandler,
	changeTripStatusHandler commands.ChangeTripStatusCommandHandler,
	resetTripDriverExpensesHandler commands.ResetTripDriverExpensesCommandHandler,
	sendDriverNotificationsHandler commands.SendDriverNotificationsCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderTripsHandler queries.GetOrderTripsQueryHandler,
	getUnreadNotificationsHandler queries.GetUnreadNotificationsQueryHandler,
) *Server {
	return &Server{
		receiveOrderHandler:            receiveOrderHandler,
		cancelOrderHandler:             cancelOrderHandler,
		deleteOrderHandler:             deleteOrderHandler,
		editOrderHandler:               editOrderHandler,
		createTripsHandler:             createTripsHandler,
		editTripHandler:                editTripHandler,
		changeTripStatusHandler:        changeTripStatusHandler,
		resetTripDriverExpensesHandler: resetTripDriverExpensesHandler,
		sendDriverNotificationsHandler: sendDriverNotificationsHandler,
		getOrderHandler:                getOrderHandler,
		getOrderTripsHandler:           getOrderTripsHandler,
		getUnreadNotificationsHandler:  getUnreadNotificationsHandler,
	}
}

// RegisterRoutes attaches all lifecycle routes under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/orders/:orderId", s.GetOrder)
	v1.PUT("/orders/:orderId", s.EditOrder)
	v1.DELETE("/orders/:orderId", s.DeleteOrder)
	v1.POST("/orders/:orderId/receive", s.ReceiveOrder)
	v1.POST("/orders/:orderId/cancel", s.CancelOrder)
	v1.GET("/orders/:orderId/trips", s.GetOrderTrips)
	v1.POST("/orders/:orderId/trips", s.CreateTrips)
	v1.POST("/orders/:orderId/notify-drivers", s.SendDriverNotifications)

	v1.PUT("/trips/:tripId", s.EditTrip)
	v1.POST("/trips/:tripId/status", s.ChangeTripStatus)
	v1.POST("/trips/:tripId/expenses/reset", s.ResetTripDriverExpenses)

	v1.GET("/notifications/unread", s.GetUnreadNotifications)
}

// caller extracts the authenticated identity the gateway forwarded.
func caller(ctx echo.Context) (organizationID kernel.UUID, userID kernel.UUID, err error) {
	organizationID, err = kernel.UUIDFromString(ctx.Request().Header.Get(headerOrganizationID))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(headerOrganizationID, err)
	}
	userID, err = kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(headerUserID, err)
	}
	return organizationID, userID, nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// respondError maps the error taxonomy onto HTTP status codes. Exclusivity
// and uniqueness conflicts are 409 so clients know to reload and retry.
func respondError(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrNoDriversAssigned):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

type receiveOrderRequest struct {
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ReceiveOrder handles POST /api/v1/orders/:orderId/receive.
func (s *Server) ReceiveOrder(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req receiveOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewReceiveOrderCommand(orderID, organizationID, req.LastUpdatedAt, userID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.receiveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cancelOrderRequest struct {
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req cancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, organizationID, req.LastUpdatedAt, userID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type deleteOrderRequest struct {
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// DeleteOrder handles DELETE /api/v1/orders/:orderId. Deletion is a soft
// delete: the order and its trips are unpublished and cancelled.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req deleteOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, organizationID, req.LastUpdatedAt, userID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type editOrderRequest struct {
	Code          string    `json:"code"`
	CustomerID    string    `json:"customerId"`
	RouteID       string    `json:"routeId"`
	UnitID        string    `json:"unitId"`
	TotalWeight   float64   `json:"totalWeight"`
	IsDraft       bool      `json:"isDraft"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// EditOrder handles PUT /api/v1/orders/:orderId.
func (s *Server) EditOrder(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req editOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("customerId", err))
	}
	routeID, err := kernel.UUIDFromString(req.RouteID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("routeId", err))
	}
	unitID, err := kernel.UUIDFromString(req.UnitID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("unitId", err))
	}

	cmd, err := commands.NewEditOrderCommand(
		orderID, organizationID, req.Code, customerID, routeID, unitID,
		req.TotalWeight, req.IsDraft, req.LastUpdatedAt, userID,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.editOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createTripsRequest struct {
	TripCount     int       `json:"tripCount"`
	WeightPerTrip float64   `json:"weightPerTrip"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// CreateTrips handles POST /api/v1/orders/:orderId/trips.
func (s *Server) CreateTrips(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req createTripsRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewCreateTripsCommand(
		orderID, organizationID, req.TripCount, req.WeightPerTrip, req.LastUpdatedAt, userID,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createTripsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type editTripRequest struct {
	DriverID          *string   `json:"driverId"`
	VehicleID         *string   `json:"vehicleId"`
	SubcontractorCost float64   `json:"subcontractorCost"`
	BridgeToll        float64   `json:"bridgeToll"`
	OtherCost         float64   `json:"otherCost"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}

// EditTrip handles PUT /api/v1/trips/:tripId.
func (s *Server) EditTrip(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	tripID, err := pathUUID(ctx, "tripId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req editTripRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	driverID, err := optionalID(req.DriverID, "driverId")
	if err != nil {
		return respondError(ctx, err)
	}
	vehicleID, err := optionalID(req.VehicleID, "vehicleId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewEditTripCommand(
		tripID, organizationID, driverID, vehicleID,
		req.SubcontractorCost, req.BridgeToll, req.OtherCost,
		req.LastUpdatedAt, userID,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.editTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type changeTripStatusRequest struct {
	StatusType    string    `json:"statusType"`
	Notes         string    `json:"notes"`
	BillOfLading  string    `json:"billOfLading"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ChangeTripStatus handles POST /api/v1/trips/:tripId/status.
func (s *Server) ChangeTripStatus(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	tripID, err := pathUUID(ctx, "tripId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req changeTripStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	statusType, err := trip.StatusFromString(req.StatusType)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeTripStatusCommand(
		tripID, organizationID, statusType, req.Notes, req.BillOfLading, req.LastUpdatedAt, userID,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.changeTripStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type driverExpenseItem struct {
	ExpenseID string  `json:"expenseId"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
}

type resetTripDriverExpensesRequest struct {
	Items         []driverExpenseItem `json:"items"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ResetTripDriverExpenses handles POST /api/v1/trips/:tripId/expenses/reset.
// The submitted list replaces the trip's expense lines wholesale.
func (s *Server) ResetTripDriverExpenses(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	tripID, err := pathUUID(ctx, "tripId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req resetTripDriverExpensesRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	items := make([]commands.DriverExpenseInput, 0, len(req.Items))
	for _, item := range req.Items {
		expenseID, idErr := kernel.UUIDFromString(item.ExpenseID)
		if idErr != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("expenseId", idErr))
		}
		items = append(items, commands.DriverExpenseInput{
			ExpenseID: expenseID,
			Name:      item.Name,
			Amount:    item.Amount,
		})
	}

	cmd, err := commands.NewResetTripDriverExpensesCommand(
		tripID, organizationID, items, req.LastUpdatedAt, userID,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.resetTripDriverExpensesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type sendDriverNotificationsRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendDriverNotifications handles POST /api/v1/orders/:orderId/notify-drivers.
func (s *Server) SendDriverNotifications(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req sendDriverNotificationsRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewSendDriverNotificationsCommand(
		orderID, organizationID, req.Subject, req.Message, userID,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.sendDriverNotificationsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	organizationID, _, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, organizationID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderTrips handles GET /api/v1/orders/:orderId/trips.
func (s *Server) GetOrderTrips(ctx echo.Context) error {
	organizationID, _, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderTripsQuery(orderID, organizationID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderTripsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUnreadNotifications handles GET /api/v1/notifications/unread.
func (s *Server) GetUnreadNotifications(ctx echo.Context) error {
	organizationID, userID, err := caller(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetUnreadNotificationsQuery(organizationID, userID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getUnreadNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

func optionalID(raw *string, paramName string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return &id, nil
}
