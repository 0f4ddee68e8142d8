// Package jobs provides scheduled background tasks for the relay service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. RouteMaintenanceJob - re-plans every packet that has no valid current route
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	maintenance := jobs.NewRouteMaintenanceJob(sweepHandler, lock, "0 * * * * *", logger)
//	jobManager := jobs.NewJobManager(maintenance)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron format with a leading seconds field.
// The default runs the sweep once a minute.
//
// # Locking
//
// Each run takes the "recalculate_missing_routes" job lock first. When
// another tick or another process holds it, the run is skipped.
//
// # Error Handling
//
// - Sweep failures are logged and the job keeps its schedule
// - A single packet failing to route is counted, not treated as a sweep failure
// - Failed job starts will stop any already running jobs
package jobs
