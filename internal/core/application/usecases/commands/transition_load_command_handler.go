package commands

import (
	"context"
	"log/slog"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/model/tracking"
	"meddrop/internal/core/domain/services"
	"meddrop/internal/core/ports"
	"meddrop/internal/pkg/errs"
)

// Orchestrator runs the post-commit side effects of a transition. It is
// invoked strictly after the status write is durable and must never surface
// an error into the caller's response.
type Orchestrator interface {
	Run(ctx context.Context, aggregate *load.Load, actor ports.Principal)
}

// TransitionLoadCommandHandler is the transition engine. It runs the pipeline
// authorize, load, preconditions, state machine, optimistic commit, and hands
// the committed aggregate to the side-effect orchestrator.
//
// Two concurrent transitions of the same load are serialized by the
// version-guarded update: exactly one commit succeeds and the loser receives
// a StateConflictError instructing the caller to re-fetch and retry.
type TransitionLoadCommandHandler struct {
	uowFactory   TransitionUoWFactory
	authorizer   ports.Authorizer
	geofence     services.GeofenceValidator
	auditLog     ports.AuditLog
	orchestrator Orchestrator
	logger       *slog.Logger
}

// NewTransitionLoadCommandHandler creates the transition engine handler.
func NewTransitionLoadCommandHandler(
	uowFactory TransitionUoWFactory,
	authorizer ports.Authorizer,
	geofence services.GeofenceValidator,
	auditLog ports.AuditLog,
	orchestrator Orchestrator,
	logger *slog.Logger,
) TransitionLoadCommandHandler {
	return TransitionLoadCommandHandler{
		uowFactory:   uowFactory,
		authorizer:   authorizer,
		geofence:     geofence,
		auditLog:     auditLog,
		orchestrator: orchestrator,
		logger:       logger.With("component", "transition_engine"),
	}
}

// Handle processes a transition request and returns the updated aggregate.
//
// Errors from the taxonomy (NotFound, Authorization, InvalidTransition,
// Precondition, Geofence, StateConflict) surface verbatim with their machine
// codes; side-effect failures never do.
func (h TransitionLoadCommandHandler) Handle(
	ctx context.Context,
	command TransitionLoadCommand,
) (*load.Load, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadRepo := uow.LoadRepository()
	trackingRepo := uow.TrackingEventRepository()

	aggregate, err := loadRepo.Get(ctx, command.LoadID())
	if err != nil {
		return nil, err
	}

	target := command.TargetStatus()

	if err = h.authorizer.AuthorizeTransition(ctx, command.Actor(), aggregate, target); err != nil {
		h.audit(ctx, aggregate, command, "TRANSITION_DENIED", ports.AuditWarning, false, map[string]any{
			"target": target.String(),
		})
		return nil, err
	}

	// Re-submitting the current status is an idempotent no-op: it bypasses
	// every side-condition, still lands a minimal custody event, and skips
	// the side-effect orchestrator entirely.
	if target == aggregate.Status() {
		if err = h.commit(ctx, uow, loadRepo, trackingRepo, aggregate, command, now); err != nil {
			return nil, err
		}
		return aggregate, nil
	}

	if command.DriverID() != nil {
		if err = aggregate.AssignDriver(*command.DriverID()); err != nil {
			return nil, err
		}
	}

	if err = h.checkPreconditions(ctx, aggregate, command, now); err != nil {
		return nil, err
	}

	if command.QuoteAmountCents() != nil {
		if err = aggregate.SetQuote(*command.QuoteAmountCents()); err != nil {
			return nil, err
		}
	}

	if err = aggregate.TransitionTo(target); err != nil {
		return nil, err
	}

	if err = h.commit(ctx, uow, loadRepo, trackingRepo, aggregate, command, now); err != nil {
		return nil, err
	}

	h.orchestrator.Run(ctx, aggregate, command.Actor())

	return aggregate, nil
}

// checkPreconditions runs the validators that guard the requested edge:
// transition timing, temperature, signature completeness and the geofence.
func (h TransitionLoadCommandHandler) checkPreconditions(
	ctx context.Context,
	aggregate *load.Load,
	command TransitionLoadCommand,
	now time.Time,
) error {
	target := command.TargetStatus()

	if err := services.ValidateTransitionTiming(aggregate, target, now); err != nil {
		return err
	}

	if target == load.StatusPickedUp &&
		(aggregate.Temperature().DemandsReading() ||
			aggregate.RequiresTemperatureLog() ||
			command.TemperatureCelsius() != nil) {
		if err := services.ValidateTemperature(aggregate.Temperature(), command.TemperatureCelsius()); err != nil {
			return err
		}
	}

	signature := services.SignatureInput{
		Signature:         command.Signature().Signature,
		SignerName:        command.Signature().SignerName,
		UnavailableReason: command.Signature().UnavailableReason,
	}
	signatureRequired := target == load.StatusDelivered && aggregate.RequiresSignature()
	if err := services.ValidateSignature(signature, signatureRequired); err != nil {
		return err
	}

	if target.RequiresGeofence() {
		if err := h.checkGeofence(ctx, aggregate, command); err != nil {
			return err
		}
	}

	return nil
}

// checkGeofence verifies the reported coordinate against the facility the
// target status refers to: the pickup site for PickedUp, the dropoff site for
// Delivered. An out-of-range position blocks the transition unless the caller
// supplied an override, which is committed with a warning-grade audit record.
func (h TransitionLoadCommandHandler) checkGeofence(
	ctx context.Context,
	aggregate *load.Load,
	command TransitionLoadCommand,
) error {
	position := command.ReportedPosition()
	if position == nil {
		h.logger.InfoContext(ctx, "no coordinate reported, geofence validation skipped",
			"load_id", aggregate.ID().String(),
			"target", command.TargetStatus().String())
		return nil
	}

	facility := aggregate.Pickup()
	if command.TargetStatus() == load.StatusDelivered {
		facility = aggregate.Dropoff()
	}

	result := h.geofence.Check(*position, facility.Location())

	if result.Skipped {
		h.logger.InfoContext(ctx, result.Message,
			"load_id", aggregate.ID().String(),
			"facility_id", facility.ID().String())
		return nil
	}

	if result.WithinRange {
		return nil
	}

	if !command.OverrideGpsValidation() {
		return errs.NewGeofenceViolationError(result.DistanceMeters, result.Tolerance)
	}

	h.audit(ctx, aggregate, command, "GPS_OVERRIDE", ports.AuditWarning, true, map[string]any{
		"distance_meters":  result.DistanceMeters,
		"tolerance_meters": result.Tolerance,
		"facility_id":      facility.ID().String(),
		"reason":           command.OverrideReason(),
	})

	return nil
}

// commit persists the status write and its custody event atomically under the
// optimistic-concurrency protocol.
func (h TransitionLoadCommandHandler) commit(
	ctx context.Context,
	uow TransitionUoW,
	loadRepo ports.LoadRepository,
	trackingRepo ports.TrackingEventRepository,
	aggregate *load.Load,
	command TransitionLoadCommand,
	now time.Time,
) error {
	event, err := h.buildEvent(aggregate, command, now)
	if err != nil {
		return err
	}

	if err = loadRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = trackingRepo.Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h TransitionLoadCommandHandler) buildEvent(
	aggregate *load.Load,
	command TransitionLoadCommand,
	now time.Time,
) (*tracking.Event, error) {
	code, label, err := tracking.CodeForStatus(aggregate.Status())
	if err != nil {
		return nil, err
	}
	if command.EventLabel() != "" {
		label = command.EventLabel()
	}

	description := command.EventDescription()
	if description == "" {
		description = command.LocationText()
	}

	actor, err := principalActor(command.Actor())
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if position := command.ReportedPosition(); position != nil {
		point := position.Point
		location = &point
	}

	return tracking.NewEvent(
		kernel.NewUUID(),
		aggregate.ID(),
		code,
		label,
		description,
		location,
		actor,
		now,
	)
}

// audit records a decision best-effort; an audit sink failure is logged and
// never blocks the transition.
func (h TransitionLoadCommandHandler) audit(
	ctx context.Context,
	aggregate *load.Load,
	command TransitionLoadCommand,
	action string,
	severity ports.AuditSeverity,
	success bool,
	metadata map[string]any,
) {
	record := ports.AuditRecord{
		Entity:    "load",
		EntityID:  aggregate.ID().String(),
		Action:    action,
		Actor:     command.Actor().Role.String() + ":" + command.Actor().ID.String(),
		Severity:  severity,
		Success:   success,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.auditLog.Record(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit record",
			"action", action,
			"load_id", aggregate.ID().String(),
			"error", err)
	}
}

// principalActor maps an authenticated principal onto the custody trail actor
// vocabulary.
func principalActor(actor ports.Principal) (tracking.Actor, error) {
	kind := tracking.ActorSystem
	switch actor.Role {
	case ports.RoleAdmin:
		kind = tracking.ActorAdmin
	case ports.RoleDriver:
		kind = tracking.ActorDriver
	case ports.RoleShipper:
		kind = tracking.ActorShipper
	}
	return tracking.NewActor(kind, actor.ID.String())
}
