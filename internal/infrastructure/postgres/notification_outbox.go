package postgres

import (
	"context"
	"fmt"
	"time"

	"blog/internal/domain"
)

const insertNotificationQuery = `
	INSERT INTO notification_outbox (id, post_id, recipient, subject, body, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// EnqueueNotifications writes outbox rows. Call it inside the transaction
// that changes the post so rows exist only if the change commits.
func (r *Repository) EnqueueNotifications(ctx context.Context, notifications []domain.Notification) error {
	q := conn(ctx, r.db)
	for _, n := range notifications {
		if _, err := q.Exec(ctx, insertNotificationQuery,
			n.ID, n.PostID, n.Recipient, n.Subject, n.Body, string(n.Status), n.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert notification for post %d: %w", n.PostID, err)
		}
	}
	return nil
}

// FetchAndLockPending claims up to limit pending rows with FOR UPDATE SKIP
// LOCKED and moves them to PROCESSING in the same transaction, so
// concurrent workers never claim the same row.
func (r *Repository) FetchAndLockPending(ctx context.Context, limit int) ([]domain.Notification, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, post_id, recipient, subject, body, created_at
		FROM notification_outbox
		WHERE status = 'PENDING'
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending notifications: %w", err)
	}

	claimedAt := time.Now().UTC()
	var claimed []domain.Notification
	for rows.Next() {
		n := domain.Notification{Status: domain.NotificationProcessing, ClaimedAt: &claimedAt}
		if err := rows.Scan(&n.ID, &n.PostID, &n.Recipient, &n.Subject, &n.Body, &n.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		claimed = append(claimed, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	for _, n := range claimed {
		if _, err := tx.Exec(ctx,
			`UPDATE notification_outbox SET status = 'PROCESSING', claimed_at = $2 WHERE id = $1`, n.ID, claimedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to mark notification %s as PROCESSING: %w", n.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return claimed, nil
}

func (r *Repository) UpdateNotificationStatus(ctx context.Context, id string, status domain.NotificationStatus, errMsg *string) error {
	var processedAt *time.Time
	if status == domain.NotificationSent || status == domain.NotificationFailed {
		now := time.Now().UTC()
		processedAt = &now
	}

	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE notification_outbox
		SET status = $1, processed_at = $2, error_message = $3
		WHERE id = $4
	`, string(status), processedAt, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}

// ReleaseNotifications puts claimed rows back in the queue. Rows that
// already moved past PROCESSING are left alone.
func (r *Repository) ReleaseNotifications(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE notification_outbox
		SET status = 'PENDING', claimed_at = NULL
		WHERE id = ANY($1::uuid[]) AND status = 'PROCESSING'
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to release notifications: %w", err)
	}
	return nil
}

// RequeueStaleNotifications recovers rows whose worker died or lost its
// status write after claiming them.
func (r *Repository) RequeueStaleNotifications(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	tag, err := conn(ctx, r.db).Exec(ctx, `
		UPDATE notification_outbox
		SET status = 'PENDING', claimed_at = NULL
		WHERE status = 'PROCESSING' AND processed_at IS NULL AND claimed_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue stale notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PruneNotifications deletes delivered rows processed before now-olderThan.
func (r *Repository) PruneNotifications(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	tag, err := conn(ctx, r.db).Exec(ctx,
		`DELETE FROM notification_outbox WHERE status = 'SENT' AND processed_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
