// Package authz implements the role-policy authorizer. The policy is static:
// admins and the system may do anything, drivers may move loads they are
// assigned to through custody statuses, shippers may steer the commercial
// side of their own loads.
package authz

import (
	"context"
	"fmt"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/ports"
	"meddrop/internal/pkg/errs"
)

// RoleAuthorizer implements ports.Authorizer with a fixed role policy.
type RoleAuthorizer struct{}

// NewRoleAuthorizer creates the role-policy authorizer.
func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

// driverStatuses are the custody statuses a driver may set on an assigned
// load.
func driverStatuses() map[load.Status]bool {
	return map[load.Status]bool{
		load.StatusEnRoute:   true,
		load.StatusPickedUp:  true,
		load.StatusInTransit: true,
		load.StatusDelivered: true,
	}
}

// shipperStatuses are the commercial statuses a shipper may set on an own
// load.
func shipperStatuses() map[load.Status]bool {
	return map[load.Status]bool{
		load.StatusQuoteRequested: true,
		load.StatusQuoteAccepted:  true,
		load.StatusRequested:      true,
		load.StatusCancelled:      true,
	}
}

// AuthorizeTransition applies the role policy to one status change.
func (a *RoleAuthorizer) AuthorizeTransition(
	_ context.Context,
	actor ports.Principal,
	aggregate *load.Load,
	target load.Status,
) error {
	action := fmt.Sprintf("set load %s to %s", aggregate.ID(), target)

	switch actor.Role {
	case ports.RoleSystem, ports.RoleAdmin:
		return nil

	case ports.RoleDriver:
		assigned := aggregate.DriverID()
		if assigned == nil || !assigned.IsEqual(actor.ID) {
			return errs.NewAuthorizationError(a.describe(actor), action)
		}
		if !driverStatuses()[target] {
			return errs.NewAuthorizationError(a.describe(actor), action)
		}
		return nil

	case ports.RoleShipper:
		if !aggregate.ShipperID().IsEqual(actor.ID) {
			return errs.NewAuthorizationError(a.describe(actor), action)
		}
		if !shipperStatuses()[target] {
			return errs.NewAuthorizationError(a.describe(actor), action)
		}
		return nil

	default:
		return errs.NewAuthorizationError(a.describe(actor), action)
	}
}

// AuthorizeCreate allows admins and the system to create loads for anyone,
// and shippers to create loads for themselves only.
func (a *RoleAuthorizer) AuthorizeCreate(
	_ context.Context,
	actor ports.Principal,
	shipperID kernel.UUID,
) error {
	action := fmt.Sprintf("create a load for shipper %s", shipperID)

	switch actor.Role {
	case ports.RoleSystem, ports.RoleAdmin:
		return nil

	case ports.RoleShipper:
		if !shipperID.IsEqual(actor.ID) {
			return errs.NewAuthorizationError(a.describe(actor), action)
		}
		return nil

	default:
		return errs.NewAuthorizationError(a.describe(actor), action)
	}
}

func (a *RoleAuthorizer) describe(actor ports.Principal) string {
	return actor.Role.String() + ":" + actor.ID.String()
}
