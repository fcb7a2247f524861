package queries

import (
	"context"
	"database/sql"
	"errors"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLoadQueryHandler retrieves a load snapshot directly from the database.
type GetLoadQueryHandler struct {
	db *gorm.DB
}

// NewGetLoadQueryHandler creates a handler for single-load reads.
func NewGetLoadQueryHandler(db *gorm.DB) GetLoadQueryHandler {
	return GetLoadQueryHandler{db: db}
}

// Handle executes the read. Returns ObjectNotFoundError for an unknown load.
func (h GetLoadQueryHandler) Handle(
	ctx context.Context,
	query GetLoadQuery,
) (GetLoadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLoadQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			driver_id,
			shipper_id,
			service_type,
			pickup_name,
			dropoff_name,
			ready_time,
			delivery_deadline,
			quote_cents,
			invoice_id,
			temperature,
			requires_signature,
			requires_temperature_log,
			tracking_code,
			version
		FROM loads
		WHERE id = ?
	`, query.LoadID().Bytes()).Row()

	response, err := scanLoadRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GetLoadQueryResponse{}, errs.NewObjectNotFoundError("load", query.LoadID().String())
	}
	if err != nil {
		return GetLoadQueryResponse{}, err
	}

	return response, nil
}

func scanLoadRow(row *sql.Row) (GetLoadQueryResponse, error) {
	var response GetLoadQueryResponse
	var id, shipperID uuid.UUID
	var driverID, invoiceID uuid.NullUUID
	var readyTime, deadline sql.NullTime

	err := row.Scan(
		&id,
		&response.Status,
		&driverID,
		&shipperID,
		&response.ServiceType,
		&response.PickupName,
		&response.DropoffName,
		&readyTime,
		&deadline,
		&response.QuoteAmountCents,
		&invoiceID,
		&response.Temperature,
		&response.RequiresSignature,
		&response.RequiresTemperatureLog,
		&response.TrackingCode,
		&response.Version,
	)
	if err != nil {
		return GetLoadQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetLoadQueryResponse{}, err
	}
	if response.ShipperID, err = kernel.UUIDFromBytes(shipperID[:]); err != nil {
		return GetLoadQueryResponse{}, err
	}
	if response.DriverID, err = optionalUUID(driverID); err != nil {
		return GetLoadQueryResponse{}, err
	}
	if response.InvoiceID, err = optionalUUID(invoiceID); err != nil {
		return GetLoadQueryResponse{}, err
	}
	if readyTime.Valid {
		response.ReadyTime = &readyTime.Time
	}
	if deadline.Valid {
		response.DeliveryDeadline = &deadline.Time
	}

	return response, nil
}

func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
