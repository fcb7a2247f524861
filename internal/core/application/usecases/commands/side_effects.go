package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/model/notification"
	"meddrop/internal/core/domain/model/tracking"
	"meddrop/internal/core/domain/services"
	"meddrop/internal/core/ports"
)

// SideEffectOrchestrator runs everything that follows a committed transition.
//
// It is split into two tiers. The synchronous tier (document locking, invoice
// generation on delivery) completes before Run returns; its failures are
// logged and swallowed because the authoritative state already committed.
// The asynchronous tier (all notification fan-out) runs on a detached
// goroutine whose completion the caller never awaits, with each channel
// isolated behind its own recover so one panicking sender cannot take down
// the rest.
type SideEffectOrchestrator struct {
	uowFactory       SideEffectUoWFactory
	invoiceGenerator ports.InvoiceGenerator
	email            ports.EmailSender
	sms              ports.SMSSender
	inApp            ports.InAppNotifier
	contacts         ports.ContactDirectory
	pdfRenderer      ports.InvoicePDFRenderer
	logger           *slog.Logger
}

// NewSideEffectOrchestrator creates the orchestrator.
func NewSideEffectOrchestrator(
	uowFactory SideEffectUoWFactory,
	invoiceGenerator ports.InvoiceGenerator,
	email ports.EmailSender,
	sms ports.SMSSender,
	inApp ports.InAppNotifier,
	contacts ports.ContactDirectory,
	pdfRenderer ports.InvoicePDFRenderer,
	logger *slog.Logger,
) *SideEffectOrchestrator {
	return &SideEffectOrchestrator{
		uowFactory:       uowFactory,
		invoiceGenerator: invoiceGenerator,
		email:            email,
		sms:              sms,
		inApp:            inApp,
		contacts:         contacts,
		pdfRenderer:      pdfRenderer,
		logger:           logger.With("component", "side_effects"),
	}
}

// Run executes both tiers for a committed transition. It never returns an
// error: nothing that happens here may undo or contradict the committed
// status.
func (o *SideEffectOrchestrator) Run(ctx context.Context, aggregate *load.Load, actor ports.Principal) {
	if aggregate.Status() == load.StatusDelivered {
		o.lockDocuments(ctx, aggregate)
		o.generateInvoice(ctx, aggregate)
	}

	// The notification tier outlives the request: detach from the caller's
	// cancellation so an early client disconnect cannot strand a half-sent
	// fan-out.
	detached := context.WithoutCancel(ctx)
	go o.fanOut(detached, aggregate, actor)
}

// lockDocuments permanently locks every document of a delivered load.
// Locking is idempotent, so a replayed DELIVERED transition is harmless.
func (o *SideEffectOrchestrator) lockDocuments(ctx context.Context, aggregate *load.Load) {
	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		o.logSoftFailure(ctx, aggregate, "document_lock", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DocumentRepository().LockAllForLoad(ctx, aggregate.ID()); err != nil {
		o.logSoftFailure(ctx, aggregate, "document_lock", err)
		return
	}

	if err := uow.Commit(ctx); err != nil {
		o.logSoftFailure(ctx, aggregate, "document_lock", err)
	}
}

// generateInvoice creates the invoice for a delivered load when none is
// attached yet. The generator re-checks the null inside its own write
// transaction, so N racing DELIVERED confirmations still yield one invoice.
func (o *SideEffectOrchestrator) generateInvoice(ctx context.Context, aggregate *load.Load) {
	if aggregate.InvoiceID() != nil {
		return
	}

	invoiceID, err := o.invoiceGenerator.Generate(ctx, aggregate.ID())
	if err != nil {
		o.logSoftFailure(ctx, aggregate, "invoice_generation", err)
		return
	}

	// Reflect the attachment on the in-memory snapshot so the caller's
	// response already carries the invoice reference.
	if err = aggregate.AttachInvoice(invoiceID); err != nil {
		o.logger.DebugContext(ctx, "invoice already attached to snapshot",
			"load_id", aggregate.ID().String())
	}
}

// fanOut delivers every notification channel for the transition. Channels
// run sequentially on the detached goroutine; each is isolated so a failure
// or panic in one never reaches the others.
func (o *SideEffectOrchestrator) fanOut(ctx context.Context, aggregate *load.Load, actor ports.Principal) {
	status := aggregate.Status()

	o.channel(ctx, aggregate, "shipper_email", func() error {
		return o.sendShipperEmail(ctx, aggregate)
	})

	if driverEmailStatuses()[status] && aggregate.DriverID() != nil {
		o.channel(ctx, aggregate, "driver_email", func() error {
			return o.sendDriverEmail(ctx, aggregate)
		})
	}

	if shipperSMSStatuses()[status] {
		o.channel(ctx, aggregate, "shipper_sms", func() error {
			return o.sendShipperSMS(ctx, aggregate)
		})
	}

	if aggregate.DriverID() != nil {
		o.channel(ctx, aggregate, "in_app_driver", func() error {
			return o.notifyDriverInApp(ctx, aggregate)
		})
	}

	if status == load.StatusDelivered || status == load.StatusDenied {
		o.channel(ctx, aggregate, "admin_broadcast", func() error {
			return o.broadcastAdmins(ctx, aggregate, actor)
		})
	}
}

// channel runs one notification channel with panic isolation.
func (o *SideEffectOrchestrator) channel(ctx context.Context, aggregate *load.Load, name string, send func() error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.ErrorContext(ctx, "notification channel panicked",
				"channel", name,
				"load_id", aggregate.ID().String(),
				"panic", fmt.Sprint(r))
		}
	}()

	if err := send(); err != nil {
		o.logger.WarnContext(ctx, "notification channel failed",
			"channel", name,
			"load_id", aggregate.ID().String(),
			"error", err)
	}
}

func (o *SideEffectOrchestrator) sendShipperEmail(ctx context.Context, aggregate *load.Load) error {
	contact, err := o.contacts.ShipperContact(ctx, aggregate.ShipperID())
	if err != nil {
		return err
	}
	if contact.Email == "" {
		return nil
	}

	_, label, err := tracking.CodeForStatus(aggregate.Status())
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Shipment %s: %s", aggregate.TrackingCode(), label)

	var body strings.Builder
	fmt.Fprintf(&body, "Your shipment %s is now %s.\n", aggregate.TrackingCode(), aggregate.Status())
	if eta := services.FormatETA(aggregate.Status(), aggregate.DeliveryDeadline(), time.Now().UTC()); eta != "" {
		fmt.Fprintf(&body, "Delivery estimate: %s.\n", eta)
	}

	attachments := o.invoiceAttachment(ctx, aggregate)

	if err = o.email.Send(ctx, contact.Email, subject, body.String(), "", attachments...); err != nil {
		return err
	}

	o.record(ctx, aggregate, notification.ChannelEmail, contact.Email, subject, body.String())
	return nil
}

// invoiceAttachment renders the invoice PDF for a delivered load. Rendering
// is best-effort: the email goes out without the attachment on failure.
func (o *SideEffectOrchestrator) invoiceAttachment(ctx context.Context, aggregate *load.Load) []ports.Attachment {
	if aggregate.Status() != load.StatusDelivered || aggregate.InvoiceID() == nil {
		return nil
	}

	data, err := o.pdfRenderer.Render(ctx, *aggregate.InvoiceID())
	if err != nil {
		o.logSoftFailure(ctx, aggregate, "invoice_pdf", err)
		return nil
	}

	return []ports.Attachment{{
		Filename:    "invoice.pdf",
		ContentType: "application/pdf",
		Data:        data,
	}}
}

func (o *SideEffectOrchestrator) sendDriverEmail(ctx context.Context, aggregate *load.Load) error {
	contact, err := o.contacts.DriverContact(ctx, *aggregate.DriverID())
	if err != nil {
		return err
	}
	if contact.Email == "" {
		return nil
	}

	_, label, err := tracking.CodeForStatus(aggregate.Status())
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Load %s: %s", aggregate.TrackingCode(), label)
	body := fmt.Sprintf("Load %s (%s -> %s) is now %s.\n",
		aggregate.TrackingCode(), aggregate.Pickup().Name(), aggregate.Dropoff().Name(), aggregate.Status())

	if err = o.email.Send(ctx, contact.Email, subject, body, ""); err != nil {
		return err
	}

	o.record(ctx, aggregate, notification.ChannelEmail, contact.Email, subject, body)
	return nil
}

func (o *SideEffectOrchestrator) sendShipperSMS(ctx context.Context, aggregate *load.Load) error {
	contact, err := o.contacts.ShipperContact(ctx, aggregate.ShipperID())
	if err != nil {
		return err
	}
	if !contact.SMSOptIn || contact.Phone == "" {
		return nil
	}

	templateKind := "load_" + strings.ToLower(aggregate.Status().String())
	params := map[string]string{
		"tracking_code": aggregate.TrackingCode(),
		"status":        aggregate.Status().String(),
	}

	if err = o.sms.Send(ctx, contact.Phone, templateKind, params); err != nil {
		return err
	}

	o.record(ctx, aggregate, notification.ChannelSMS, contact.Phone, "",
		fmt.Sprintf("%s: %s", templateKind, aggregate.TrackingCode()))
	return nil
}

func (o *SideEffectOrchestrator) notifyDriverInApp(ctx context.Context, aggregate *load.Load) error {
	_, label, err := tracking.CodeForStatus(aggregate.Status())
	if err != nil {
		return err
	}

	driverID := *aggregate.DriverID()
	body := fmt.Sprintf("%s: load %s", label, aggregate.TrackingCode())

	record, err := notification.NewNotification(
		kernel.NewUUID(), aggregate.ID(),
		notification.ChannelInApp, driverID.String(), "", body,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = o.inApp.NotifyDriver(ctx, driverID, record); err != nil {
		return err
	}

	o.record(ctx, aggregate, notification.ChannelInApp, driverID.String(), "", body)
	return nil
}

func (o *SideEffectOrchestrator) broadcastAdmins(ctx context.Context, aggregate *load.Load, actor ports.Principal) error {
	_, label, err := tracking.CodeForStatus(aggregate.Status())
	if err != nil {
		return err
	}

	body := fmt.Sprintf("%s: load %s (by %s)", label, aggregate.TrackingCode(), actor.Role)

	record, err := notification.NewNotification(
		kernel.NewUUID(), aggregate.ID(),
		notification.ChannelInApp, "admins", "", body,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = o.inApp.BroadcastAdmins(ctx, record); err != nil {
		return err
	}

	o.record(ctx, aggregate, notification.ChannelInApp, "admins", "", body)
	return nil
}

// record persists a notification record best-effort in its own short
// transaction.
func (o *SideEffectOrchestrator) record(
	ctx context.Context,
	aggregate *load.Load,
	channel notification.Channel,
	recipient, subject, body string,
) {
	entry, err := notification.NewNotification(
		kernel.NewUUID(), aggregate.ID(), channel, recipient, subject, body, time.Now().UTC())
	if err != nil {
		o.logSoftFailure(ctx, aggregate, "notification_record", err)
		return
	}

	uow := o.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		o.logSoftFailure(ctx, aggregate, "notification_record", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.NotificationRepository().Add(ctx, entry); err != nil {
		o.logSoftFailure(ctx, aggregate, "notification_record", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		o.logSoftFailure(ctx, aggregate, "notification_record", err)
	}
}

func (o *SideEffectOrchestrator) logSoftFailure(ctx context.Context, aggregate *load.Load, stage string, err error) {
	o.logger.WarnContext(ctx, "side effect failed after committed transition",
		"stage", stage,
		"load_id", aggregate.ID().String(),
		"error", err)
}

func driverEmailStatuses() map[load.Status]bool {
	return map[load.Status]bool{
		load.StatusEnRoute:   true,
		load.StatusPickedUp:  true,
		load.StatusInTransit: true,
		load.StatusDelivered: true,
	}
}

// shipperSMSStatuses are the milestones texted to opted-in shippers: driver
// assigned, on the way, delivered.
func shipperSMSStatuses() map[load.Status]bool {
	return map[load.Status]bool{
		load.StatusScheduled: true,
		load.StatusEnRoute:   true,
		load.StatusDelivered: true,
	}
}
