package jobs

import (
	"fmt"
	"log/slog"

	"meddrop/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueLoadJob *OverdueLoadJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	loads ports.LoadRepository,
	contacts ports.ContactDirectory,
	email ports.EmailSender,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueLoadJob: NewOverdueLoadJob(loads, contacts, email, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueLoadJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue load job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueLoadJob.Stop()
}
