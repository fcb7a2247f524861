package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"meddrop/internal/core/application/usecases/commands"
	"meddrop/internal/core/domain/model/document"
	"meddrop/internal/core/domain/model/invoice"
	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/load"
	"meddrop/internal/core/domain/model/notification"
	"meddrop/internal/core/domain/model/tracking"
	"meddrop/internal/core/domain/services"
	"meddrop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLoadRepository struct{ mock.Mock }

func (m *MockLoadRepository) Add(ctx context.Context, aggregate *load.Load) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockLoadRepository) Update(ctx context.Context, aggregate *load.Load) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockLoadRepository) Get(ctx context.Context, id kernel.UUID) (*load.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*load.Load), args.Error(1)
}

func (m *MockLoadRepository) GetByTrackingCode(_ context.Context, _ string) (*load.Load, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockLoadRepository) GetRecentByShipper(
	ctx context.Context, shipperID kernel.UUID, since time.Time,
) ([]*load.Load, error) {
	args := m.Called(ctx, shipperID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*load.Load), args.Error(1)
}

func (m *MockLoadRepository) GetOverdue(_ context.Context, _ time.Time) ([]*load.Load, error) {
	return nil, errors.New("not implemented in mock")
}

type MockTrackingEventRepository struct{ mock.Mock }

func (m *MockTrackingEventRepository) Add(ctx context.Context, event *tracking.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTrackingEventRepository) GetByLoad(_ context.Context, _ kernel.UUID) ([]*tracking.Event, error) {
	return nil, errors.New("not implemented in mock")
}

type MockDocumentRepository struct{ mock.Mock }

func (m *MockDocumentRepository) Add(_ context.Context, _ *document.Document) error {
	return errors.New("not implemented in mock")
}

func (m *MockDocumentRepository) GetByLoad(_ context.Context, _ kernel.UUID) ([]*document.Document, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockDocumentRepository) LockAllForLoad(ctx context.Context, loadID kernel.UUID) error {
	args := m.Called(ctx, loadID)
	return args.Error(0)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByLoad(_ context.Context, _ kernel.UUID) (*invoice.Invoice, error) {
	return nil, errors.New("not implemented in mock")
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, record *notification.Notification) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByLoad(_ context.Context, _ kernel.UUID) ([]*notification.Notification, error) {
	return nil, errors.New("not implemented in mock")
}

type MockTransitionUoW struct{ mock.Mock }

func (m *MockTransitionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) LoadRepository() ports.LoadRepository {
	args := m.Called()
	return args.Get(0).(ports.LoadRepository)
}

func (m *MockTransitionUoW) TrackingEventRepository() ports.TrackingEventRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingEventRepository)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitionUoW)
}

type MockCreateUoWFactory struct{ mock.Mock }

func (m *MockCreateUoWFactory) Create() commands.CreateUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateUoW)
}

type MockAuthorizer struct{ mock.Mock }

func (m *MockAuthorizer) AuthorizeTransition(
	ctx context.Context, actor ports.Principal, aggregate *load.Load, target load.Status,
) error {
	args := m.Called(ctx, actor, aggregate, target)
	return args.Error(0)
}

func (m *MockAuthorizer) AuthorizeCreate(ctx context.Context, actor ports.Principal, shipperID kernel.UUID) error {
	args := m.Called(ctx, actor, shipperID)
	return args.Error(0)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Record(ctx context.Context, record ports.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockOrchestrator struct{ mock.Mock }

func (m *MockOrchestrator) Run(ctx context.Context, aggregate *load.Load, actor ports.Principal) {
	m.Called(ctx, aggregate, actor)
}

type MockFingerprintCache struct{ mock.Mock }

func (m *MockFingerprintCache) RecentFingerprints(
	ctx context.Context, shipperID kernel.UUID,
) ([]services.LoadFingerprint, error) {
	args := m.Called(ctx, shipperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.LoadFingerprint), args.Error(1)
}

func (m *MockFingerprintCache) Remember(ctx context.Context, fingerprint services.LoadFingerprint) error {
	args := m.Called(ctx, fingerprint)
	return args.Error(0)
}

// testFacility builds a facility fixture, optionally with coordinates.
func testFacility(t *testing.T, name string, lat, lon *float64) load.Facility {
	t.Helper()

	var location *kernel.GeoPoint
	if lat != nil && lon != nil {
		point, err := kernel.NewGeoPoint(*lat, *lon)
		require.NoError(t, err)
		location = &point
	}

	facility, err := load.NewFacility(kernel.NewUUID(), name, location)
	require.NoError(t, err)
	return facility
}

func floatPtr(v float64) *float64 { return &v }

// restoredLoad builds an aggregate in the given status with a driver
// assigned, geofenced facilities and version 3.
func restoredLoad(t *testing.T, status load.Status, driverID *kernel.UUID) *load.Load {
	t.Helper()

	ready := time.Now().UTC().Add(-2 * time.Hour)
	deadline := ready.Add(8 * time.Hour)

	params := load.NewLoadParams{
		ID:               kernel.NewUUID(),
		ShipperID:        kernel.NewUUID(),
		ServiceType:      load.ServiceRoutine,
		Pickup:           testFacility(t, "St. Vincent Lab", floatPtr(40.7580), floatPtr(-73.9855)),
		Dropoff:          testFacility(t, "Harborview Clinic", floatPtr(40.6892), floatPtr(-74.0445)),
		DriverID:         driverID,
		ReadyTime:        &ready,
		DeliveryDeadline: &deadline,
		QuoteAmountCents: 12500,
		Temperature:      load.TemperatureAmbient,
		TrackingCode:     "MD-7F3K2QXW",
	}

	aggregate, err := load.RestoreLoad(params, status, nil, 3)
	require.NoError(t, err)
	return aggregate
}

func adminPrincipal() ports.Principal {
	return ports.Principal{ID: kernel.NewUUID(), Role: ports.RoleAdmin}
}
