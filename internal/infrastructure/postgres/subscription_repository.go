package postgres

import (
	"context"
	"fmt"

	"blog/internal/domain"
)

// AddSubscription stores the edge; an existing edge is left untouched.
func (r *Repository) AddSubscription(ctx context.Context, sub domain.Subscription) error {
	_, err := conn(ctx, r.db).Exec(ctx, `
		INSERT INTO subscriptions (subscriber_id, author_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (subscriber_id, author_id) DO NOTHING
	`, sub.SubscriberID, sub.AuthorID, sub.CreatedAt)
	if err != nil {
		if hasPgCode(err, foreignKeyViolation) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

func (r *Repository) RemoveSubscription(ctx context.Context, subscriberID, authorID int64) error {
	_, err := conn(ctx, r.db).Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND author_id = $2`,
		subscriberID, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (r *Repository) ListSubscribedAuthorIDs(ctx context.Context, subscriberID int64) ([]int64, error) {
	rows, err := conn(ctx, r.db).Query(ctx,
		`SELECT author_id FROM subscriptions WHERE subscriber_id = $1 ORDER BY author_id`,
		subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return ids, nil
}

// ListSubscribers returns the followers of authorID with their account e-mail.
func (r *Repository) ListSubscribers(ctx context.Context, authorID int64) ([]domain.Subscriber, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT p.id, u.id, u.username, u.email
		FROM subscriptions s
		JOIN profiles p ON p.id = s.subscriber_id
		JOIN users u ON u.id = p.user_id
		WHERE s.author_id = $1
		ORDER BY p.id
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ProfileID, &s.UserID, &s.Username, &s.Email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}
	return subs, nil
}
