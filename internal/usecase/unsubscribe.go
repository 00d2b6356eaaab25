package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// Unsubscribe removes the follow edge. Removing an absent edge succeeds.
type Unsubscribe struct {
	tx            domain.TxManager
	profiles      domain.ProfileRepository
	subscriptions domain.SubscriptionRepository
	logger        *slog.Logger
}

func NewUnsubscribe(tx domain.TxManager, profiles domain.ProfileRepository, subscriptions domain.SubscriptionRepository, logger *slog.Logger) *Unsubscribe {
	return &Unsubscribe{tx: tx, profiles: profiles, subscriptions: subscriptions, logger: logger}
}

func (uc *Unsubscribe) Execute(ctx context.Context, userID, authorID int64) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		subscriber, err := uc.profiles.GetOrCreateProfile(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := uc.profiles.FindProfileByID(ctx, authorID); err != nil {
			return err
		}
		return uc.subscriptions.RemoveSubscription(ctx, subscriber.ID, authorID)
	})
	if err != nil {
		return fmt.Errorf("unsubscribe from author %d: %w", authorID, err)
	}

	uc.logger.InfoContext(ctx, "unsubscribed", "user_id", userID, "author_id", authorID)
	return nil
}
