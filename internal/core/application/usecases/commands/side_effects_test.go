package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"meddrop/internal/core/application/usecases/commands"
	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/model/notification"
	"meddrop/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSideEffectUoW struct{ mock.Mock }

func (m *MockSideEffectUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSideEffectUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSideEffectUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSideEffectUoW) LoadRepository() ports.LoadRepository {
	args := m.Called()
	return args.Get(0).(ports.LoadRepository)
}

func (m *MockSideEffectUoW) DocumentRepository() ports.DocumentRepository {
	args := m.Called()
	return args.Get(0).(ports.DocumentRepository)
}

func (m *MockSideEffectUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockSideEffectUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockSideEffectUoWFactory struct{ mock.Mock }

func (m *MockSideEffectUoWFactory) Create() commands.SideEffectUoW {
	args := m.Called()
	return args.Get(0).(commands.SideEffectUoW)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) Send(
	ctx context.Context, to, subject, text, html string, attachments ...ports.Attachment,
) error {
	args := m.Called(ctx, to, subject, text, html, attachments)
	return args.Error(0)
}

type MockSMSSender struct{ mock.Mock }

func (m *MockSMSSender) Send(ctx context.Context, to, templateKind string, params map[string]string) error {
	args := m.Called(ctx, to, templateKind, params)
	return args.Error(0)
}

type MockInAppNotifier struct{ mock.Mock }

func (m *MockInAppNotifier) NotifyDriver(
	ctx context.Context, driverID kernel.UUID, record *notification.Notification,
) error {
	args := m.Called(ctx, driverID, record)
	return args.Error(0)
}

func (m *MockInAppNotifier) BroadcastAdmins(ctx context.Context, record *notification.Notification) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockContactDirectory struct{ mock.Mock }

func (m *MockContactDirectory) ShipperContact(ctx context.Context, shipperID kernel.UUID) (ports.Contact, error) {
	args := m.Called(ctx, shipperID)
	return args.Get(0).(ports.Contact), args.Error(1)
}

func (m *MockContactDirectory) DriverContact(ctx context.Context, driverID kernel.UUID) (ports.Contact, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(ports.Contact), args.Error(1)
}

func (m *MockContactDirectory) AdminContacts(ctx context.Context) ([]ports.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Contact), args.Error(1)
}

type MockInvoiceGenerator struct{ mock.Mock }

func (m *MockInvoiceGenerator) Generate(ctx context.Context, loadID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, loadID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockPDFRenderer struct{ mock.Mock }

func (m *MockPDFRenderer) Render(ctx context.Context, invoiceID kernel.UUID) ([]byte, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type orchestratorHarness struct {
	uow       *MockSideEffectUoW
	factory   *MockSideEffectUoWFactory
	generator *MockInvoiceGenerator
	email     *MockEmailSender
	sms       *MockSMSSender
	inApp     *MockInAppNotifier
	contacts  *MockContactDirectory
	pdf       *MockPDFRenderer

	orchestrator *commands.SideEffectOrchestrator
}

func newOrchestratorHarness() *orchestratorHarness {
	h := &orchestratorHarness{
		uow:       new(MockSideEffectUoW),
		factory:   new(MockSideEffectUoWFactory),
		generator: new(MockInvoiceGenerator),
		email:     new(MockEmailSender),
		sms:       new(MockSMSSender),
		inApp:     new(MockInAppNotifier),
		contacts:  new(MockContactDirectory),
		pdf:       new(MockPDFRenderer),
	}

	h.orchestrator = commands.NewSideEffectOrchestrator(
		h.factory, h.generator, h.email, h.sms, h.inApp, h.contacts, h.pdf, testLogger())

	return h
}

// waitFor blocks until done closes or the test times out. The notification
// tier runs on a detached goroutine, so tests must rendezvous with it before
// asserting.
func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the async notification tier")
	}
}

func TestSideEffectOrchestrator_Run_DeliveredLocksDocumentsAndGeneratesInvoice(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.StatusDelivered, nil)
	invoiceID := kernel.NewUUID()

	h := newOrchestratorHarness()

	docRepo := new(MockDocumentRepository)
	h.factory.On("Create").Return(h.uow).Once()
	h.uow.On("Begin", mock.Anything).Return(nil).Once()
	h.uow.On("DocumentRepository").Return(docRepo).Once()
	docRepo.On("LockAllForLoad", mock.Anything, aggregate.ID()).Return(nil).Once()
	h.uow.On("Commit", mock.Anything).Return(nil).Once()
	h.uow.On("Rollback", mock.Anything).Return(nil).Once()

	h.generator.On("Generate", mock.Anything, aggregate.ID()).Return(invoiceID, nil).Once()

	// Async tier: empty contacts silence email and SMS; no driver silences
	// the in-app channel. The admin broadcast is the last channel, so its
	// completion is the rendezvous point.
	done := make(chan struct{})
	h.contacts.On("ShipperContact", mock.Anything, aggregate.ShipperID()).
		Return(ports.Contact{}, nil).Twice()
	h.inApp.On("BroadcastAdmins", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("broker unavailable")).Once()

	h.orchestrator.Run(ctx, aggregate, adminPrincipal())
	waitFor(t, done)

	require.NotNil(t, aggregate.InvoiceID())
	assert.True(t, aggregate.InvoiceID().IsEqual(invoiceID))

	docRepo.AssertExpectations(t)
	h.factory.AssertExpectations(t)
	h.uow.AssertExpectations(t)
	h.generator.AssertExpectations(t)
	h.inApp.AssertExpectations(t)
}

func TestSideEffectOrchestrator_Run_InvoiceIsNotRegeneratedWhenAttached(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	aggregate := restoredLoad(t, load.StatusPickedUp, &driverID)
	require.NoError(t, aggregate.AttachInvoice(kernel.NewUUID()))
	require.NoError(t, aggregate.TransitionTo(load.StatusDelivered))

	h := newOrchestratorHarness()

	docRepo := new(MockDocumentRepository)
	h.factory.On("Create").Return(h.uow)
	h.uow.On("Begin", mock.Anything).Return(nil)
	h.uow.On("DocumentRepository").Return(docRepo).Once()
	docRepo.On("LockAllForLoad", mock.Anything, aggregate.ID()).Return(nil).Once()
	h.uow.On("Commit", mock.Anything).Return(nil)
	h.uow.On("Rollback", mock.Anything).Return(nil)

	// Async tier silenced the same way; empty contacts quiet the email and
	// SMS channels.
	done := make(chan struct{})
	h.contacts.On("ShipperContact", mock.Anything, aggregate.ShipperID()).
		Return(ports.Contact{}, nil)
	h.contacts.On("DriverContact", mock.Anything, driverID).
		Return(ports.Contact{}, nil)
	h.inApp.On("NotifyDriver", mock.Anything, driverID, mock.AnythingOfType("*notification.Notification")).
		Return(errors.New("broker unavailable")).Once()
	h.inApp.On("BroadcastAdmins", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("broker unavailable")).Once()

	h.orchestrator.Run(ctx, aggregate, adminPrincipal())
	waitFor(t, done)

	h.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	docRepo.AssertExpectations(t)
	h.inApp.AssertExpectations(t)
}

func TestSideEffectOrchestrator_Run_ShipperEmailCarriesETA(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.StatusInTransit, nil)

	h := newOrchestratorHarness()

	// In transit is not an SMS milestone, so only the email channel resolves
	// the shipper contact.
	contact := ports.Contact{Name: "Lakeside Labs", Email: "dispatch@lakesidelabs.example"}
	h.contacts.On("ShipperContact", mock.Anything, aggregate.ShipperID()).
		Return(contact, nil).Once()

	done := make(chan struct{})
	h.email.On("Send",
		mock.Anything, contact.Email, mock.AnythingOfType("string"),
		mock.MatchedBy(func(body string) bool {
			return len(body) > 0
		}),
		"", mock.Anything,
	).Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("smtp unavailable")).Once()

	h.orchestrator.Run(ctx, aggregate, adminPrincipal())
	waitFor(t, done)

	h.email.AssertExpectations(t)
	h.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	h.factory.AssertNotCalled(t, "Create")
}

func TestSideEffectOrchestrator_Run_ShipperSMSFiresOnMilestones(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	aggregate := restoredLoad(t, load.StatusEnRoute, &driverID)

	h := newOrchestratorHarness()

	contact := ports.Contact{Name: "Lakeside Labs", Phone: "+15550100", SMSOptIn: true}
	h.contacts.On("ShipperContact", mock.Anything, aggregate.ShipperID()).
		Return(contact, nil).Twice()
	h.contacts.On("DriverContact", mock.Anything, driverID).
		Return(ports.Contact{}, nil).Once()

	h.sms.On("Send", mock.Anything, contact.Phone, "load_en_route",
		mock.MatchedBy(func(params map[string]string) bool {
			return params["tracking_code"] == aggregate.TrackingCode()
		})).Return(errors.New("sms gateway unavailable")).Once()

	done := make(chan struct{})
	h.inApp.On("NotifyDriver", mock.Anything, driverID, mock.AnythingOfType("*notification.Notification")).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("broker unavailable")).Once()

	h.orchestrator.Run(ctx, aggregate, adminPrincipal())
	waitFor(t, done)

	h.sms.AssertExpectations(t)
	h.contacts.AssertExpectations(t)
}

func TestSideEffectOrchestrator_Run_ShipperSMSSkipsIntermediateStatuses(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	aggregate := restoredLoad(t, load.StatusPickedUp, &driverID)

	h := newOrchestratorHarness()

	// Picked up is texted to nobody; only the email and in-app channels run,
	// so the shipper contact resolves once.
	contact := ports.Contact{Name: "Lakeside Labs", Phone: "+15550100", SMSOptIn: true}
	h.contacts.On("ShipperContact", mock.Anything, aggregate.ShipperID()).
		Return(contact, nil).Once()
	h.contacts.On("DriverContact", mock.Anything, driverID).
		Return(ports.Contact{}, nil).Once()

	done := make(chan struct{})
	h.inApp.On("NotifyDriver", mock.Anything, driverID, mock.AnythingOfType("*notification.Notification")).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("broker unavailable")).Once()

	h.orchestrator.Run(ctx, aggregate, adminPrincipal())
	waitFor(t, done)

	h.sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	h.contacts.AssertExpectations(t)
}

func TestSideEffectOrchestrator_Run_DocumentLockFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredLoad(t, load.StatusDelivered, nil)

	h := newOrchestratorHarness()

	docRepo := new(MockDocumentRepository)
	h.factory.On("Create").Return(h.uow).Once()
	h.uow.On("Begin", mock.Anything).Return(nil).Once()
	h.uow.On("DocumentRepository").Return(docRepo).Once()
	docRepo.On("LockAllForLoad", mock.Anything, aggregate.ID()).
		Return(errors.New("deadlock detected")).Once()
	h.uow.On("Rollback", mock.Anything).Return(nil).Once()

	h.generator.On("Generate", mock.Anything, aggregate.ID()).Return(kernel.NewUUID(), nil).Once()

	done := make(chan struct{})
	h.contacts.On("ShipperContact", mock.Anything, aggregate.ShipperID()).
		Return(ports.Contact{}, nil).Twice()
	h.inApp.On("BroadcastAdmins", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("broker unavailable")).Once()

	// Run must not panic or surface anything even though locking failed.
	h.orchestrator.Run(ctx, aggregate, adminPrincipal())
	waitFor(t, done)

	docRepo.AssertExpectations(t)
	h.generator.AssertExpectations(t)
}
