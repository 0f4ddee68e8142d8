package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	// RouteMaintenanceLockName guards the sweep across overlapping ticks and processes.
	RouteMaintenanceLockName = "recalculate_missing_routes"

	// DefaultMaintenanceSchedule runs the sweep at the start of every minute.
	DefaultMaintenanceSchedule = "0 * * * * *"

	defaultSweepBatchSize = 500
)

type sweepHandler interface {
	Handle(ctx context.Context, cmd commands.RecalculateMissingRoutesCommand) (commands.SweepResult, error)
}

// RouteMaintenanceJob periodically re-plans packets that lack a valid route.
type RouteMaintenanceJob struct {
	handler   sweepHandler
	lock      ports.JobLock
	schedule  string
	batchSize int
	lockTTL   time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRouteMaintenanceJob creates the sweep job. An empty schedule falls
// back to DefaultMaintenanceSchedule. Schedules use the six field cron
// format with seconds.
func NewRouteMaintenanceJob(
	handler sweepHandler,
	lock ports.JobLock,
	schedule string,
	logger *slog.Logger,
) *RouteMaintenanceJob {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	return &RouteMaintenanceJob{
		handler:   handler,
		lock:      lock,
		schedule:  schedule,
		batchSize: defaultSweepBatchSize,
		lockTTL:   5 * time.Minute,
		now:       time.Now,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "route_maintenance_job"),
	}
}

// Start schedules the sweep.
func (j *RouteMaintenanceJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route maintenance job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *RouteMaintenanceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Route maintenance job stopped")
}

// RunOnce performs a single sweep under the job lock. It reports false
// when another worker holds the lock.
func (j *RouteMaintenanceJob) RunOnce(ctx context.Context) (bool, error) {
	lease, err := j.lock.Acquire(ctx, RouteMaintenanceLockName, j.lockTTL)
	if errors.Is(err, ports.ErrLockNotAcquired) {
		j.logger.DebugContext(ctx, "Route maintenance skipped, sweep already running")
		return false, nil
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Route maintenance lock failed", "error", err)
		return false, err
	}
	defer func() {
		if err := lease.Release(ctx); err != nil {
			j.logger.WarnContext(ctx, "Route maintenance lock release failed", "error", err)
		}
	}()

	cmd, err := commands.NewRecalculateMissingRoutesCommand(j.now(), j.batchSize)
	if err != nil {
		return true, err
	}

	started := time.Now()
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Route maintenance sweep failed", "error", err)
		return true, err
	}

	j.logger.InfoContext(ctx, "Route maintenance sweep finished",
		"checked", result.Checked,
		"routed", result.Routed,
		"failed", result.Failed,
		"duration", time.Since(started),
	)
	return true, nil
}
