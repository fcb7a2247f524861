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

// NearDuplicatePolicy decides what happens when intake finds a near-duplicate
// of the proposed load.
type NearDuplicatePolicy int

const (
	// PolicyAdvisory logs a warning and lets creation proceed.
	PolicyAdvisory NearDuplicatePolicy = iota

	// PolicyRequireAck rejects creation unless the caller explicitly
	// acknowledged the near match.
	PolicyRequireAck
)

// ParseNearDuplicatePolicy maps a configuration string onto a policy.
// Unrecognized values fall back to advisory.
func ParseNearDuplicatePolicy(s string) NearDuplicatePolicy {
	if s == "require_ack" {
		return PolicyRequireAck
	}
	return PolicyAdvisory
}

// recentLoadWindow bounds how far back duplicate detection scans a shipper's
// loads.
const recentLoadWindow = 7 * 24 * time.Hour

// CreateLoadCommandHandler handles load intake: duplicate detection, initial
// status selection and the first custody event, all in one transaction.
type CreateLoadCommandHandler struct {
	uowFactory   CreateUoWFactory
	authorizer   ports.Authorizer
	fingerprints ports.FingerprintCache
	auditLog     ports.AuditLog
	nearPolicy   NearDuplicatePolicy
	logger       *slog.Logger
}

// NewCreateLoadCommandHandler creates the intake handler.
func NewCreateLoadCommandHandler(
	uowFactory CreateUoWFactory,
	authorizer ports.Authorizer,
	fingerprints ports.FingerprintCache,
	auditLog ports.AuditLog,
	nearPolicy NearDuplicatePolicy,
	logger *slog.Logger,
) CreateLoadCommandHandler {
	return CreateLoadCommandHandler{
		uowFactory:   uowFactory,
		authorizer:   authorizer,
		fingerprints: fingerprints,
		auditLog:     auditLog,
		nearPolicy:   nearPolicy,
		logger:       logger.With("component", "load_intake"),
	}
}

// Handle processes an intake request and returns the created aggregate.
//
// An exact duplicate yields a DuplicateLoadError unless the caller overrode
// it; a near duplicate follows the configured policy. The initial status is
// Scheduled when a driver is pre-assigned, Requested otherwise, or New for
// quote-first intakes.
func (h CreateLoadCommandHandler) Handle(ctx context.Context, command CreateLoadCommand) (*load.Load, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorizer.AuthorizeCreate(ctx, command.Actor(), command.ShipperID()); err != nil {
		return nil, err
	}

	aggregate, err := h.buildAggregate(command)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadRepo := uow.LoadRepository()

	if err = h.checkDuplicates(ctx, loadRepo, aggregate, command, now); err != nil {
		return nil, err
	}

	if err = loadRepo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := h.buildCreatedEvent(aggregate, command, now)
	if err != nil {
		return nil, err
	}

	if err = uow.TrackingEventRepository().Add(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.rememberFingerprint(ctx, aggregate)

	return aggregate, nil
}

func (h CreateLoadCommandHandler) buildAggregate(command CreateLoadCommand) (*load.Load, error) {
	trackingCode, err := newTrackingCode()
	if err != nil {
		return nil, err
	}

	params := load.NewLoadParams{
		ID:                     command.LoadID(),
		ShipperID:              command.ShipperID(),
		ServiceType:            command.ServiceType(),
		Pickup:                 command.Pickup(),
		Dropoff:                command.Dropoff(),
		DriverID:               command.DriverID(),
		ReadyTime:              command.ReadyTime(),
		DeliveryDeadline:       command.DeliveryDeadline(),
		QuoteAmountCents:       command.QuoteAmountCents(),
		Temperature:            command.Temperature(),
		RequiresSignature:      command.RequiresSignature(),
		RequiresTemperatureLog: command.RequiresTemperatureLog(),
		TrackingCode:           trackingCode,
	}

	if command.QuoteRequested() {
		return load.NewQuoteRequest(params)
	}
	return load.NewLoad(params)
}

// checkDuplicates classifies the proposal against the shipper's recent loads.
// The fingerprint cache is consulted first; the SQL scan backs it. A cache
// failure only degrades detection, it never blocks intake.
func (h CreateLoadCommandHandler) checkDuplicates(
	ctx context.Context,
	loadRepo ports.LoadRepository,
	aggregate *load.Load,
	command CreateLoadCommand,
	now time.Time,
) error {
	proposed := services.FingerprintOf(aggregate)

	candidates, err := h.fingerprints.RecentFingerprints(ctx, aggregate.ShipperID())
	if err != nil {
		h.logger.WarnContext(ctx, "fingerprint cache unavailable, falling back to repository scan",
			"shipper_id", aggregate.ShipperID().String(),
			"error", err)
		candidates = nil
	}

	recent, err := loadRepo.GetRecentByShipper(ctx, aggregate.ShipperID(), now.Add(-recentLoadWindow))
	if err != nil {
		return err
	}
	for _, existing := range recent {
		candidates = append(candidates, services.FingerprintOf(existing))
	}

	// The cache may already hold this very intake after a client retry.
	filtered := candidates[:0]
	for _, candidate := range candidates {
		if !candidate.LoadID.IsEqual(aggregate.ID()) {
			filtered = append(filtered, candidate)
		}
	}

	match := services.NewDuplicateDetector().Classify(proposed, filtered)

	switch match.Level {
	case services.MatchExact:
		if !command.OverrideDuplicate() {
			return errs.NewDuplicateLoadError(match.Level.String(), match.Existing.LoadID.String())
		}
		h.auditDuplicateOverride(ctx, aggregate, command, match)
	case services.MatchNear:
		if h.nearPolicy == PolicyRequireAck && !command.AcknowledgeNearDuplicate() {
			return errs.NewDuplicateLoadError(match.Level.String(), match.Existing.LoadID.String())
		}
		h.logger.WarnContext(ctx, "near-duplicate load created",
			"load_id", aggregate.ID().String(),
			"existing_load_id", match.Existing.LoadID.String(),
			"shipper_id", aggregate.ShipperID().String())
	case services.MatchNone:
	}

	return nil
}

func (h CreateLoadCommandHandler) auditDuplicateOverride(
	ctx context.Context,
	aggregate *load.Load,
	command CreateLoadCommand,
	match services.DuplicateMatch,
) {
	record := ports.AuditRecord{
		Entity:   "load",
		EntityID: aggregate.ID().String(),
		Action:   "DUPLICATE_OVERRIDE",
		Actor:    command.Actor().Role.String() + ":" + command.Actor().ID.String(),
		Severity: ports.AuditWarning,
		Success:  true,
		Metadata: map[string]any{
			"existing_load_id": match.Existing.LoadID.String(),
			"match_level":      match.Level.String(),
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := h.auditLog.Record(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit record",
			"action", "DUPLICATE_OVERRIDE",
			"load_id", aggregate.ID().String(),
			"error", err)
	}
}

func (h CreateLoadCommandHandler) buildCreatedEvent(
	aggregate *load.Load,
	command CreateLoadCommand,
	now time.Time,
) (*tracking.Event, error) {
	code, label, err := tracking.CodeForStatus(aggregate.Status())
	if err != nil {
		return nil, err
	}

	actor, err := principalActor(command.Actor())
	if err != nil {
		return nil, err
	}

	return tracking.NewEvent(kernel.NewUUID(), aggregate.ID(), code, label, "", nil, actor, now)
}

func (h CreateLoadCommandHandler) rememberFingerprint(ctx context.Context, aggregate *load.Load) {
	if err := h.fingerprints.Remember(ctx, services.FingerprintOf(aggregate)); err != nil {
		h.logger.WarnContext(ctx, "failed to cache load fingerprint",
			"load_id", aggregate.ID().String(),
			"error", err)
	}
}
