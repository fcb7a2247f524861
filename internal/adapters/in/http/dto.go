package http

import (
	"time"

	"meddrop/internal/core/application/usecases/queries"
	"meddrop/internal/core/domain/model/load"
)

// CreateLoadRequest is the intake request body.
type CreateLoadRequest struct {
	ShipperID   string          `json:"shipper_id"`
	ServiceType string          `json:"service_type"`
	Pickup      FacilityRequest `json:"pickup"`
	Dropoff     FacilityRequest `json:"dropoff"`

	DriverID         *string    `json:"driver_id,omitempty"`
	ReadyTime        *time.Time `json:"ready_time,omitempty"`
	DeliveryDeadline *time.Time `json:"delivery_deadline,omitempty"`
	QuoteAmountCents int64      `json:"quote_amount_cents"`

	Temperature            string `json:"temperature"`
	RequiresSignature      bool   `json:"requires_signature"`
	RequiresTemperatureLog bool   `json:"requires_temperature_log"`

	QuoteRequested           bool `json:"quote_requested"`
	OverrideDuplicate        bool `json:"override_duplicate"`
	AcknowledgeNearDuplicate bool `json:"acknowledge_near_duplicate"`
}

// FacilityRequest is a pickup or dropoff site in a request body.
type FacilityRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// TransitionLoadRequest is the transition request body.
type TransitionLoadRequest struct {
	TargetStatus string `json:"target_status"`

	QuoteAmountCents *int64 `json:"quote_amount_cents,omitempty"`
	QuoteNotes       string `json:"quote_notes,omitempty"`

	EventLabel       string `json:"event_label,omitempty"`
	EventDescription string `json:"event_description,omitempty"`
	LocationText     string `json:"location_text,omitempty"`

	DriverID *string `json:"driver_id,omitempty"`

	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	AccuracyMeters float64  `json:"accuracy_meters,omitempty"`

	OverrideGpsValidation bool   `json:"override_gps_validation,omitempty"`
	OverrideReason        string `json:"override_reason,omitempty"`

	Signature                  string `json:"signature,omitempty"`
	SignerName                 string `json:"signer_name,omitempty"`
	SignatureUnavailableReason string `json:"signature_unavailable_reason,omitempty"`

	TemperatureCelsius *float64 `json:"temperature_celsius,omitempty"`
}

// LoadResponse is the external shape of a load.
type LoadResponse struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	TrackingCode     string     `json:"tracking_code"`
	ShipperID        string     `json:"shipper_id"`
	DriverID         *string    `json:"driver_id,omitempty"`
	ServiceType      string     `json:"service_type"`
	PickupName       string     `json:"pickup_name"`
	DropoffName      string     `json:"dropoff_name"`
	ReadyTime        *time.Time `json:"ready_time,omitempty"`
	DeliveryDeadline *time.Time `json:"delivery_deadline,omitempty"`
	QuoteAmountCents int64      `json:"quote_amount_cents"`
	InvoiceID        *string    `json:"invoice_id,omitempty"`
	Temperature      string     `json:"temperature"`
	Version          int64      `json:"version"`
}

// TrackingResponse is the public tracking page payload.
type TrackingResponse struct {
	TrackingCode     string                  `json:"tracking_code"`
	Status           string                  `json:"status"`
	ServiceType      string                  `json:"service_type"`
	PickupName       string                  `json:"pickup_name"`
	DropoffName      string                  `json:"dropoff_name"`
	DeliveryDeadline *time.Time              `json:"delivery_deadline,omitempty"`
	ETA              string                  `json:"eta,omitempty"`
	Events           []TrackingEventResponse `json:"events"`
}

// TrackingEventResponse is one custody event on the tracking timeline.
type TrackingEventResponse struct {
	Code        string    `json:"code"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	ActorType   string    `json:"actor_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ErrorResponse is the uniform error body. RequiresOverride is set only on
// geofence violations that an admin can force through with a reason.
type ErrorResponse struct {
	Code             string   `json:"code"`
	Message          string   `json:"message"`
	RequiresOverride bool     `json:"requires_override,omitempty"`
	DistanceMeters   *float64 `json:"distance_meters,omitempty"`
	ToleranceMeters  *float64 `json:"tolerance_meters,omitempty"`
}

func loadToResponse(aggregate *load.Load) LoadResponse {
	response := LoadResponse{
		ID:               aggregate.ID().String(),
		Status:           aggregate.Status().String(),
		TrackingCode:     aggregate.TrackingCode(),
		ShipperID:        aggregate.ShipperID().String(),
		ServiceType:      aggregate.ServiceType().String(),
		PickupName:       aggregate.Pickup().Name(),
		DropoffName:      aggregate.Dropoff().Name(),
		ReadyTime:        aggregate.ReadyTime(),
		DeliveryDeadline: aggregate.DeliveryDeadline(),
		QuoteAmountCents: aggregate.QuoteAmountCents(),
		Temperature:      aggregate.Temperature().String(),
		Version:          aggregate.Version(),
	}
	if driverID := aggregate.DriverID(); driverID != nil {
		id := driverID.String()
		response.DriverID = &id
	}
	if invoiceID := aggregate.InvoiceID(); invoiceID != nil {
		id := invoiceID.String()
		response.InvoiceID = &id
	}
	return response
}

func snapshotToResponse(snapshot queries.GetLoadQueryResponse) LoadResponse {
	response := LoadResponse{
		ID:               snapshot.ID.String(),
		Status:           snapshot.Status,
		TrackingCode:     snapshot.TrackingCode,
		ShipperID:        snapshot.ShipperID.String(),
		ServiceType:      snapshot.ServiceType,
		PickupName:       snapshot.PickupName,
		DropoffName:      snapshot.DropoffName,
		ReadyTime:        snapshot.ReadyTime,
		DeliveryDeadline: snapshot.DeliveryDeadline,
		QuoteAmountCents: snapshot.QuoteAmountCents,
		Temperature:      snapshot.Temperature,
		Version:          snapshot.Version,
	}
	if snapshot.DriverID != nil {
		id := snapshot.DriverID.String()
		response.DriverID = &id
	}
	if snapshot.InvoiceID != nil {
		id := snapshot.InvoiceID.String()
		response.InvoiceID = &id
	}
	return response
}

func trackingToResponse(history queries.GetTrackingHistoryQueryResponse) TrackingResponse {
	events := make([]TrackingEventResponse, 0, len(history.Events))
	for _, event := range history.Events {
		events = append(events, TrackingEventResponse{
			Code:        event.Code,
			Label:       event.Label,
			Description: event.Description,
			Latitude:    event.Latitude,
			Longitude:   event.Longitude,
			ActorType:   event.ActorType,
			CreatedAt:   event.CreatedAt,
		})
	}

	return TrackingResponse{
		TrackingCode:     history.TrackingCode,
		Status:           history.Status,
		ServiceType:      history.ServiceType,
		PickupName:       history.PickupName,
		DropoffName:      history.DropoffName,
		DeliveryDeadline: history.DeliveryDeadline,
		ETA:              history.ETA,
		Events:           events,
	}
}
