// Package jobs provides scheduled background tasks for the freight lifecycle
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3 to
// handle periodic housekeeping the request path must not pay for.
//
// # Available Jobs
//
// 1. NotificationCleanupJob - Runs hourly to delete read notification
// recipients older than the retention window, and notifications left without
// any recipients.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(notificationRepo, retention, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Cleanup failures are logged and retried on the next tick; a failed sweep
// never affects the lifecycle operations.
package jobs
