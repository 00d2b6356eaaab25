package job

import (
	"context"
	"time"

	"blog/config"
	"blog/internal/usecase"
)

// NotificationDispatchJob drains the notification outbox.
func NotificationDispatchJob(dispatch *usecase.DispatchNotifications, cfg config.OutboxConfig, waker *Waker) Job {
	j := Job{
		Name:     "notification-dispatch",
		Interval: cfg.PollInterval,
		Timeout:  cfg.JobTimeout,
		Fn: func(ctx context.Context) error {
			_, err := dispatch.Execute(ctx)
			return err
		},
	}
	if waker != nil {
		j.Trigger = waker.C()
	}
	return j
}

// NotificationPruneJob deletes delivered rows past retention.
func NotificationPruneJob(prune *usecase.PruneNotifications, cfg config.OutboxConfig) Job {
	return Job{
		Name:     "notification-prune",
		Interval: time.Hour,
		Timeout:  cfg.JobTimeout,
		Fn: func(ctx context.Context) error {
			_, err := prune.Execute(ctx)
			return err
		},
	}
}
