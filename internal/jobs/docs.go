// Package jobs provides scheduled background tasks for the load lifecycle
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path cannot cover.
//
// # Available Jobs
//
// 1. OverdueLoadJob - Runs every minute to find loads in an active movement
// status whose delivery deadline has passed and email the dispatch admins
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required collaborators
//	jobManager := jobs.NewJobManager(loadRepository, contactDirectory, emailSender, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed scan is logged and retried on the next tick
// - A failed alert email is logged per recipient; remaining recipients still
// receive theirs
// - Each load is alerted once per process lifetime to keep the admin inbox
// readable
package jobs
