// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"meddrop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest unit of work it needs, so tests can
// mock exactly the repositories a command touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LoadRepoFactory provides access to the load repository within a transaction.
	LoadRepoFactory interface {
		LoadRepository() ports.LoadRepository
	}

	// TrackingRepoFactory provides access to the tracking event repository
	// within a transaction.
	TrackingRepoFactory interface {
		TrackingEventRepository() ports.TrackingEventRepository
	}

	// DocumentRepoFactory provides access to the document repository within a
	// transaction.
	DocumentRepoFactory interface {
		DocumentRepository() ports.DocumentRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a
	// transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// NotificationRepoFactory provides access to the notification repository
	// within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// TransitionUoW is the commit unit of the transition engine: the status
	// write and the custody event land in one transaction or not at all.
	TransitionUoW interface {
		TxManager
		LoadRepoFactory
		TrackingRepoFactory
	}

	// TransitionUoWFactory creates transition unit of work instances.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// CreateUoW manages transactions for load intake: the new load and its
	// CREATED custody event.
	CreateUoW interface {
		TxManager
		LoadRepoFactory
		TrackingRepoFactory
	}

	// CreateUoWFactory creates intake unit of work instances.
	CreateUoWFactory interface {
		Create() CreateUoW
	}

	// SideEffectUoW manages transactions for the post-commit orchestrator:
	// document locking, invoice attachment and notification records.
	SideEffectUoW interface {
		TxManager
		LoadRepoFactory
		DocumentRepoFactory
		InvoiceRepoFactory
		NotificationRepoFactory
	}

	// SideEffectUoWFactory creates side-effect unit of work instances.
	SideEffectUoWFactory interface {
		Create() SideEffectUoW
	}
)
