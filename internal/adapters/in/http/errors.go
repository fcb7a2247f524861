package http

import (
	"errors"
	"net/http"

	"meddrop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps a domain error to the HTTP contract. Validation and policy
// failures are 422, conflicts (concurrent writers, duplicates) are 409,
// unknown objects 404 and authorization denials 403.
func writeError(ctx echo.Context, err error) error {
	var geofence *errs.GeofenceViolationError
	if errors.As(err, &geofence) {
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:             geofence.Code(),
			Message:          err.Error(),
			RequiresOverride: geofence.RequiresOverride,
			DistanceMeters:   &geofence.DistanceMeters,
			ToleranceMeters:  &geofence.ToleranceMeters,
		})
	}

	return ctx.JSON(statusOf(err), ErrorResponse{
		Code:    errs.CodeOf(err),
		Message: err.Error(),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, errs.ErrAuthorization):
		return http.StatusForbidden

	case errors.Is(err, errs.ErrStateConflict),
		errors.Is(err, errs.ErrDuplicateLoad):
		return http.StatusConflict

	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, errs.ErrSignatureIncomplete),
		errors.Is(err, errs.ErrTemperatureOutOfRange),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
