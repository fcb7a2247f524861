package cmd

import (
	"log/slog"
	"strconv"
	"time"

	"meddrop/internal/adapters/in/http"
	"meddrop/internal/adapters/out/authz"
	"meddrop/internal/adapters/out/notify"
	"meddrop/internal/adapters/out/postgres"
	"meddrop/internal/adapters/out/postgres/auditrepo"
	"meddrop/internal/adapters/out/postgres/contactrepo"
	"meddrop/internal/adapters/out/rabbitmq"
	meddropredis "meddrop/internal/adapters/out/redis"
	"meddrop/internal/core/application/usecases/commands"
	"meddrop/internal/core/application/usecases/queries"
	"meddrop/internal/core/domain/services"
	"meddrop/internal/core/ports"
	"meddrop/internal/jobs"

	"github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultGeofenceToleranceMeters = 100
	fingerprintTTL                 = 24 * time.Hour
)

// CompositionRoot wires adapters to use cases. Handlers are cheap value
// types; a fresh one per call site is fine.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	authorizer       ports.Authorizer
	fingerprints     ports.FingerprintCache
	inApp            ports.InAppNotifier
	auditLog         ports.AuditLog
	contacts         ports.ContactDirectory
	invoiceGenerator ports.InvoiceGenerator
	email            ports.EmailSender
	sms              ports.SMSSender
	pdfRenderer      ports.InvoicePDFRenderer

	geofence   services.GeofenceValidator
	nearPolicy commands.NearDuplicatePolicy
}

// NewCompositionRoot builds the object graph from already-opened connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *goredis.Client,
	amqpConn *amqp091.Connection,
	logger *slog.Logger,
) (CompositionRoot, error) {
	inApp, err := rabbitmq.NewInAppNotifier(amqpConn)
	if err != nil {
		return CompositionRoot{}, err
	}

	tolerance := defaultGeofenceToleranceMeters
	if config.GeofenceToleranceMeters != "" {
		parsed, err := strconv.Atoi(config.GeofenceToleranceMeters)
		if err != nil {
			return CompositionRoot{}, err
		}
		tolerance = parsed
	}

	return CompositionRoot{
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:           logger,
		authorizer:       authz.NewRoleAuthorizer(),
		fingerprints:     meddropredis.NewFingerprintCache(redisClient, fingerprintTTL),
		inApp:            inApp,
		auditLog:         auditrepo.NewGormAuditLog(gormDB),
		contacts:         contactrepo.NewGormContactDirectory(gormDB),
		invoiceGenerator: postgres.NewGormInvoiceGenerator(gormDB),
		email:            notify.NewLogEmailSender(logger),
		sms:              notify.NewLogSMSSender(logger),
		pdfRenderer:      notify.NewStubInvoicePDFRenderer(),
		geofence:         services.NewGeofenceValidator(float64(tolerance)),
		nearPolicy:       commands.ParseNearDuplicatePolicy(config.NearDuplicatePolicy),
	}, nil
}

func (c *CompositionRoot) CreateCreateLoadCommandHandler() commands.CreateLoadCommandHandler {
	var f commands.CreateUoWFactory = FuncCreateUoWFactory(func() commands.CreateUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateLoadCommandHandler(
		f, c.authorizer, c.fingerprints, c.auditLog, c.nearPolicy, c.logger)
}

func (c *CompositionRoot) CreateTransitionLoadCommandHandler() commands.TransitionLoadCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionLoadCommandHandler(
		f, c.authorizer, c.geofence, c.auditLog, c.createSideEffectOrchestrator(), c.logger)
}

func (c *CompositionRoot) createSideEffectOrchestrator() *commands.SideEffectOrchestrator {
	var f commands.SideEffectUoWFactory = FuncSideEffectUoWFactory(func() commands.SideEffectUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSideEffectOrchestrator(
		f, c.invoiceGenerator, c.email, c.sms, c.inApp, c.contacts, c.pdfRenderer, c.logger)
}

func (c *CompositionRoot) CreateGetLoadQueryHandler() queries.GetLoadQueryHandler {
	return queries.NewGetLoadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingHistoryQueryHandler() queries.GetTrackingHistoryQueryHandler {
	return queries.NewGetTrackingHistoryQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the echo-facing server.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateLoadCommandHandler(),
		c.CreateTransitionLoadCommandHandler(),
		c.CreateGetLoadQueryHandler(),
		c.CreateGetTrackingHistoryQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs. The repositories run on the
// main connection; jobs only read.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	uow := c.uowFactory.Create()
	return jobs.NewJobManager(uow.LoadRepository(), c.contacts, c.email, c.logger)
}

type FuncCreateUoWFactory func() commands.CreateUoW

func (f FuncCreateUoWFactory) Create() commands.CreateUoW {
	return f()
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncSideEffectUoWFactory func() commands.SideEffectUoW

func (f FuncSideEffectUoWFactory) Create() commands.SideEffectUoW {
	return f()
}
