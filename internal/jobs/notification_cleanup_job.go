package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// NotificationCleanupJob sweeps read notifications that aged past the
// retention window. Runs hourly; each sweep deletes read recipient rows older
// than the cutoff and any notifications left without recipients.
type NotificationCleanupJob struct {
	repository ports.NotificationRepository
	retention  time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewNotificationCleanupJob creates the retention sweep job. The retention
// duration is how long read notifications are kept before deletion.
func NewNotificationCleanupJob(
	repository ports.NotificationRepository,
	retention time.Duration,
	logger *slog.Logger,
) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		repository: repository,
		retention:  retention,
		cron:       cron.New(),
		logger:     logger.With("component", "notification_cleanup_job"),
	}
}

// Start schedules the hourly sweep.
func (j *NotificationCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification cleanup job started (running hourly)",
		"retention", j.retention.String())
	return nil
}

// Stop stops the cleanup job.
func (j *NotificationCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification cleanup job stopped")
}

func (j *NotificationCleanupJob) sweep() {
	ctx := context.Background()
	cutoff := time.Now().Add(-j.retention)

	removed, err := j.repository.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification cleanup sweep failed", "error", err)
		return
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "Notification cleanup sweep completed",
			"removedRecipients", removed, "cutoff", cutoff)
	}
}
