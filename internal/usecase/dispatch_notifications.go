package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blog/internal/domain"
	"blog/metrics"
)

// statusWriteTimeout bounds outbox bookkeeping done after the job
// context may already be gone.
const statusWriteTimeout = 5 * time.Second

// DispatchResult summarises one outbox run.
type DispatchResult struct {
	Claimed  int
	Sent     int
	Failed   int
	Released int
}

// DispatchNotifications sends a batch of queued notifications. Each row
// gets exactly one delivery attempt; failures are recorded on the row and
// do not stop the rest of the batch. Rows claimed but not attempted before
// ctx ends go back to PENDING.
type DispatchNotifications struct {
	outbox    domain.NotificationOutbox
	sender    domain.MailSender
	batchSize int
	logger    *slog.Logger
}

func NewDispatchNotifications(outbox domain.NotificationOutbox, sender domain.MailSender, batchSize int, logger *slog.Logger) *DispatchNotifications {
	return &DispatchNotifications{outbox: outbox, sender: sender, batchSize: batchSize, logger: logger}
}

func (uc *DispatchNotifications) Execute(ctx context.Context) (DispatchResult, error) {
	var result DispatchResult

	claimed, err := uc.outbox.FetchAndLockPending(ctx, uc.batchSize)
	if err != nil {
		return result, fmt.Errorf("claim notifications: %w", err)
	}
	result.Claimed = len(claimed)

	for i, n := range claimed {
		if ctx.Err() != nil {
			result.Released = uc.release(ctx, claimed[i:])
			break
		}

		id := n.ID.String()
		if err := uc.sender.Send(ctx, n.Message()); err != nil {
			result.Failed++
			uc.logger.ErrorContext(ctx, "notification delivery failed",
				"notification_id", id,
				"post_id", n.PostID,
				"recipient", n.Recipient,
				"error", err)
			uc.updateStatus(ctx, id, domain.NotificationFailed, err)
			continue
		}

		result.Sent++
		uc.updateStatus(ctx, id, domain.NotificationSent, nil)
	}

	metrics.RecordDispatch(result.Claimed, result.Sent, result.Failed)
	if result.Claimed > 0 {
		uc.logger.InfoContext(ctx, "notifications dispatched",
			"claimed", result.Claimed, "sent", result.Sent,
			"failed", result.Failed, "released", result.Released)
	}
	return result, nil
}

// bookkeeping detaches from ctx so a send that already happened is still
// recorded after cancellation.
func bookkeeping(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), statusWriteTimeout)
}

func (uc *DispatchNotifications) release(ctx context.Context, pending []domain.Notification) int {
	ids := make([]string, len(pending))
	for i, n := range pending {
		ids[i] = n.ID.String()
	}

	writeCtx, cancel := bookkeeping(ctx)
	defer cancel()

	if err := uc.outbox.ReleaseNotifications(writeCtx, ids); err != nil {
		uc.logger.ErrorContext(writeCtx, "failed to release unattempted notifications",
			"count", len(ids), "error", err)
		return 0
	}
	uc.logger.WarnContext(writeCtx, "dispatch interrupted, notifications returned to queue",
		"count", len(ids), "cause", ctx.Err())
	return len(ids)
}

func (uc *DispatchNotifications) updateStatus(ctx context.Context, id string, status domain.NotificationStatus, cause error) {
	var msg *string
	if cause != nil {
		s := cause.Error()
		msg = &s
	}

	writeCtx, cancel := bookkeeping(ctx)
	defer cancel()

	if err := uc.outbox.UpdateNotificationStatus(writeCtx, id, status, msg); err != nil {
		uc.logger.ErrorContext(writeCtx, "failed to update notification status",
			"notification_id", id, "status", status, "error", err)
	}
}
