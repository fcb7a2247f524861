// Package http exposes the load lifecycle over a JSON API. Transport-level
// authentication is fronted elsewhere; the adapter reads the authenticated
// principal from the X-Actor-Id and X-Actor-Role headers.
package http

import (
	"net/http"

	"meddrop/internal/core/application/usecases/commands"
	"meddrop/internal/core/application/usecases/queries"
	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/ports"
	"meddrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createLoadHandler     commands.CreateLoadCommandHandler
	transitionLoadHandler commands.TransitionLoadCommandHandler

	getLoadHandler            queries.GetLoadQueryHandler
	getTrackingHistoryHandler queries.GetTrackingHistoryQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createLoadHandler commands.CreateLoadCommandHandler,
	transitionLoadHandler commands.TransitionLoadCommandHandler,
	getLoadHandler queries.GetLoadQueryHandler,
	getTrackingHistoryHandler queries.GetTrackingHistoryQueryHandler,
) *Server {
	return &Server{
		createLoadHandler:         createLoadHandler,
		transitionLoadHandler:     transitionLoadHandler,
		getLoadHandler:            getLoadHandler,
		getTrackingHistoryHandler: getTrackingHistoryHandler,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/loads", s.CreateLoad)
	api.POST("/loads/:id/transition", s.TransitionLoad)
	api.GET("/loads/:id", s.GetLoad)
	api.GET("/tracking/:code", s.GetTrackingHistory)
}

// CreateLoad handles POST /api/v1/loads.
func (s *Server) CreateLoad(ctx echo.Context) error {
	var request CreateLoadRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	actor, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	params, err := createParamsFrom(request, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewCreateLoadCommand(params)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.createLoadHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, loadToResponse(aggregate))
}

// TransitionLoad handles POST /api/v1/loads/:id/transition.
func (s *Server) TransitionLoad(ctx echo.Context) error {
	loadID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid load id",
		})
	}

	var request TransitionLoadRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	actor, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	params, err := transitionParamsFrom(loadID, request, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewTransitionLoadCommand(params)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregate, err := s.transitionLoadHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, loadToResponse(aggregate))
}

// GetLoad handles GET /api/v1/loads/:id.
func (s *Server) GetLoad(ctx echo.Context) error {
	loadID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid load id",
		})
	}

	query, err := queries.NewGetLoadQuery(loadID)
	if err != nil {
		return writeError(ctx, err)
	}

	snapshot, err := s.getLoadHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshotToResponse(snapshot))
}

// GetTrackingHistory handles GET /api/v1/tracking/:code. This endpoint is
// public: the tracking code itself is the credential.
func (s *Server) GetTrackingHistory(ctx echo.Context) error {
	query, err := queries.NewGetTrackingHistoryQuery(ctx.Param("code"))
	if err != nil {
		return writeError(ctx, err)
	}

	history, err := s.getTrackingHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingToResponse(history))
}

func principalFrom(ctx echo.Context) (ports.Principal, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return ports.Principal{}, errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}

	role := roleFromString(ctx.Request().Header.Get(headerActorRole))
	if role == ports.RoleUnknown {
		return ports.Principal{}, errs.NewValueIsRequiredError("actor role")
	}

	return ports.Principal{ID: id, Role: role}, nil
}

func roleFromString(s string) ports.Role {
	switch s {
	case "SYSTEM":
		return ports.RoleSystem
	case "ADMIN":
		return ports.RoleAdmin
	case "DRIVER":
		return ports.RoleDriver
	case "SHIPPER":
		return ports.RoleShipper
	default:
		return ports.RoleUnknown
	}
}

func createParamsFrom(
	request CreateLoadRequest,
	actor ports.Principal,
) (commands.CreateLoadParams, error) {
	shipperID, err := kernel.UUIDFromString(request.ShipperID)
	if err != nil {
		return commands.CreateLoadParams{}, errs.NewValueIsRequiredErrorWithCause("shipperId", err)
	}

	serviceType, err := load.ServiceTypeFromString(request.ServiceType)
	if err != nil {
		return commands.CreateLoadParams{}, err
	}

	temperature, err := load.TemperatureFromString(request.Temperature)
	if err != nil {
		return commands.CreateLoadParams{}, err
	}

	pickup, err := facilityInputFrom(request.Pickup)
	if err != nil {
		return commands.CreateLoadParams{}, err
	}

	dropoff, err := facilityInputFrom(request.Dropoff)
	if err != nil {
		return commands.CreateLoadParams{}, err
	}

	driverID, err := optionalUUIDFrom(request.DriverID, "driverId")
	if err != nil {
		return commands.CreateLoadParams{}, err
	}

	return commands.CreateLoadParams{
		LoadID:                   kernel.NewUUID(),
		ShipperID:                shipperID,
		Actor:                    actor,
		ServiceType:              serviceType,
		Pickup:                   pickup,
		Dropoff:                  dropoff,
		DriverID:                 driverID,
		ReadyTime:                request.ReadyTime,
		DeliveryDeadline:         request.DeliveryDeadline,
		QuoteAmountCents:         request.QuoteAmountCents,
		Temperature:              temperature,
		RequiresSignature:        request.RequiresSignature,
		RequiresTemperatureLog:   request.RequiresTemperatureLog,
		QuoteRequested:           request.QuoteRequested,
		OverrideDuplicate:        request.OverrideDuplicate,
		AcknowledgeNearDuplicate: request.AcknowledgeNearDuplicate,
	}, nil
}

func transitionParamsFrom(
	loadID kernel.UUID,
	request TransitionLoadRequest,
	actor ports.Principal,
) (commands.TransitionLoadParams, error) {
	targetStatus, err := load.StatusFromString(request.TargetStatus)
	if err != nil {
		return commands.TransitionLoadParams{}, err
	}

	driverID, err := optionalUUIDFrom(request.DriverID, "driverId")
	if err != nil {
		return commands.TransitionLoadParams{}, err
	}

	return commands.TransitionLoadParams{
		LoadID:                     loadID,
		TargetStatus:               targetStatus,
		Actor:                      actor,
		QuoteAmountCents:           request.QuoteAmountCents,
		QuoteNotes:                 request.QuoteNotes,
		EventLabel:                 request.EventLabel,
		EventDescription:           request.EventDescription,
		LocationText:               request.LocationText,
		DriverID:                   driverID,
		Latitude:                   request.Latitude,
		Longitude:                  request.Longitude,
		AccuracyMeters:             request.AccuracyMeters,
		OverrideGpsValidation:      request.OverrideGpsValidation,
		OverrideReason:             request.OverrideReason,
		Signature:                  request.Signature,
		SignerName:                 request.SignerName,
		SignatureUnavailableReason: request.SignatureUnavailableReason,
		TemperatureCelsius:         request.TemperatureCelsius,
	}, nil
}

func facilityInputFrom(request FacilityRequest) (commands.FacilityInput, error) {
	id, err := kernel.UUIDFromString(request.ID)
	if err != nil {
		return commands.FacilityInput{}, errs.NewValueIsRequiredErrorWithCause("facility id", err)
	}

	return commands.FacilityInput{
		ID:        id,
		Name:      request.Name,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
	}, nil
}

func optionalUUIDFrom(raw *string, paramName string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return &id, nil
}
