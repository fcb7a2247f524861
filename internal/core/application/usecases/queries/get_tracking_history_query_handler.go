package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/services"
	"meddrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingHistoryQueryHandler serves the public tracking page: a shipment
// summary resolved by tracking code plus the full custody timeline.
type GetTrackingHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingHistoryQueryHandler creates a handler for tracking lookups.
func NewGetTrackingHistoryQueryHandler(db *gorm.DB) GetTrackingHistoryQueryHandler {
	return GetTrackingHistoryQueryHandler{db: db}
}

// Handle resolves the tracking code to a load and collects its events, newest
// first. Returns ObjectNotFoundError for an unknown code.
func (h GetTrackingHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingHistoryQuery,
) (GetTrackingHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingHistoryQueryResponse{}, err
	}

	response, err := h.loadSummary(ctx, query.TrackingCode())
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, err
	}

	response.Events, err = h.events(ctx, response.LoadID)
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, err
	}

	return response, nil
}

func (h GetTrackingHistoryQueryHandler) loadSummary(
	ctx context.Context,
	trackingCode string,
) (GetTrackingHistoryQueryResponse, error) {
	var response GetTrackingHistoryQueryResponse
	var id uuid.UUID
	var deadline sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			service_type,
			pickup_name,
			dropoff_name,
			delivery_deadline
		FROM loads
		WHERE tracking_code = ?
	`, trackingCode).Row()

	err := row.Scan(
		&id,
		&response.TrackingCode,
		&response.Status,
		&response.ServiceType,
		&response.PickupName,
		&response.DropoffName,
		&deadline,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return response, errs.NewObjectNotFoundError("load", trackingCode)
	}
	if err != nil {
		return response, err
	}

	if response.LoadID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return response, err
	}
	if deadline.Valid {
		response.DeliveryDeadline = &deadline.Time
	}

	status, err := load.StatusFromString(response.Status)
	if err != nil {
		return response, err
	}
	response.ETA = services.FormatETA(status, response.DeliveryDeadline, time.Now().UTC())

	return response, nil
}

func (h GetTrackingHistoryQueryHandler) events(
	ctx context.Context,
	loadID kernel.UUID,
) ([]TrackingEventView, error) {
	events := make([]TrackingEventView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			label,
			description,
			lat,
			lon,
			actor_type,
			created_at
		FROM tracking_events
		WHERE load_id = ?
		ORDER BY created_at DESC
	`, loadID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event TrackingEventView
		var description sql.NullString
		var lat, lon sql.NullFloat64

		err = rows.Scan(
			&event.Code,
			&event.Label,
			&description,
			&lat,
			&lon,
			&event.ActorType,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		event.Description = description.String
		if lat.Valid {
			event.Latitude = &lat.Float64
		}
		if lon.Valid {
			event.Longitude = &lon.Float64
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
