package ports

import (
	"context"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/model/notification"
	"meddrop/internal/core/domain/services"
)

// Role is the coarse capability class of an authenticated caller.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleSystem is the service itself (background jobs, internal calls).
	RoleSystem

	// RoleAdmin is dispatch staff with unrestricted transition rights.
	RoleAdmin

	// RoleDriver is a courier; may move own loads through custody statuses.
	RoleDriver

	// RoleShipper is a requesting customer; may act on own loads only.
	RoleShipper
)

// String returns the wire representation of the role.
func (r Role) String() string {
	switch r {
	case RoleSystem:
		return "SYSTEM"
	case RoleAdmin:
		return "ADMIN"
	case RoleDriver:
		return "DRIVER"
	case RoleShipper:
		return "SHIPPER"
	default:
		return "UNKNOWN"
	}
}

// Principal is the authenticated caller of a command. Transport-level
// authentication is out of scope; adapters construct the principal from
// whatever session mechanism fronts the service.
type Principal struct {
	ID   kernel.UUID
	Role Role
}

// Authorizer answers capability checks of the form "can actor X set load Y to
// status Z". It is invoked before any validation; a denial short-circuits the
// whole engine with an authorization error.
type Authorizer interface {
	// AuthorizeTransition returns an AuthorizationError when the principal
	// may not move the load to the target status.
	AuthorizeTransition(ctx context.Context, actor Principal, aggregate *load.Load, target load.Status) error

	// AuthorizeCreate returns an AuthorizationError when the principal may
	// not create a load on behalf of the given shipper.
	AuthorizeCreate(ctx context.Context, actor Principal, shipperID kernel.UUID) error
}

// Attachment is a file carried by an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EmailSender delivers email. Implementations may queue; the orchestrator
// treats a returned error as a soft failure and only logs it.
type EmailSender interface {
	Send(ctx context.Context, to, subject, text, html string, attachments ...Attachment) error
}

// SMSSender delivers a templated text message.
type SMSSender interface {
	Send(ctx context.Context, to, templateKind string, params map[string]string) error
}

// InAppNotifier publishes in-app messages to the message broker.
type InAppNotifier interface {
	// NotifyDriver delivers a message to one driver's in-app feed.
	NotifyDriver(ctx context.Context, driverID kernel.UUID, record *notification.Notification) error

	// BroadcastAdmins delivers a message to every dispatch admin.
	BroadcastAdmins(ctx context.Context, record *notification.Notification) error
}

// InvoiceGenerator creates the invoice for a delivered load and returns its
// identifier. Generation is idempotent per load at the persistence level.
type InvoiceGenerator interface {
	Generate(ctx context.Context, loadID kernel.UUID) (kernel.UUID, error)
}

// InvoicePDFRenderer renders an invoice to PDF bytes. Only the asynchronous
// email path invokes it; rendering failures never block anything.
type InvoicePDFRenderer interface {
	Render(ctx context.Context, invoiceID kernel.UUID) ([]byte, error)
}

// AuditSeverity grades an audit record.
type AuditSeverity string

const (
	AuditInfo    AuditSeverity = "INFO"
	AuditWarning AuditSeverity = "WARNING"
	AuditError   AuditSeverity = "ERROR"
)

// AuditRecord is one entry in the audit trail: every override and every
// authorization or GPS decision worth recording produces one.
type AuditRecord struct {
	Entity    string
	EntityID  string
	Action    string
	Actor     string
	Severity  AuditSeverity
	Success   bool
	Metadata  map[string]any
	CreatedAt time.Time
}

// AuditLog accepts audit records. Sinks must tolerate high write rates;
// callers never block a transition on an audit failure.
type AuditLog interface {
	Record(ctx context.Context, record AuditRecord) error
}

// Contact holds the reachable addresses of a shipper or driver.
type Contact struct {
	Name     string
	Email    string
	Phone    string
	SMSOptIn bool
}

// ContactDirectory resolves principals to their notification addresses.
type ContactDirectory interface {
	ShipperContact(ctx context.Context, shipperID kernel.UUID) (Contact, error)
	DriverContact(ctx context.Context, driverID kernel.UUID) (Contact, error)
	AdminContacts(ctx context.Context) ([]Contact, error)
}

// FingerprintCache holds recently created load fingerprints per shipper so
// duplicate detection can consult fresh intakes before the SQL scan. A cache
// failure degrades detection to the repository scan only.
type FingerprintCache interface {
	// RecentFingerprints returns the cached fingerprints for a shipper.
	RecentFingerprints(ctx context.Context, shipperID kernel.UUID) ([]services.LoadFingerprint, error)

	// Remember adds a fingerprint to the shipper's recent set with a TTL.
	Remember(ctx context.Context, fingerprint services.LoadFingerprint) error
}
