package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blog/internal/domain"
)

// PruneNotifications deletes delivered notifications past retention. It
// first requeues rows stuck in PROCESSING for longer than staleAfter, which
// happens when a worker exits between claiming a row and recording the
// attempt.
type PruneNotifications struct {
	outbox     domain.NotificationOutbox
	retention  time.Duration
	staleAfter time.Duration
	logger     *slog.Logger
}

func NewPruneNotifications(outbox domain.NotificationOutbox, retention, staleAfter time.Duration, logger *slog.Logger) *PruneNotifications {
	return &PruneNotifications{outbox: outbox, retention: retention, staleAfter: staleAfter, logger: logger}
}

func (uc *PruneNotifications) Execute(ctx context.Context) (int64, error) {
	requeued, err := uc.outbox.RequeueStaleNotifications(ctx, uc.staleAfter)
	if err != nil {
		return 0, fmt.Errorf("requeue stale notifications: %w", err)
	}
	if requeued > 0 {
		uc.logger.WarnContext(ctx, "requeued stale notifications", "count", requeued)
	}

	n, err := uc.outbox.PruneNotifications(ctx, uc.retention)
	if err != nil {
		return 0, fmt.Errorf("prune notifications: %w", err)
	}
	if n > 0 {
		uc.logger.InfoContext(ctx, "pruned delivered notifications", "count", n)
	}
	return n, nil
}
