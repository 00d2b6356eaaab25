package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blog/internal/domain"
)

// Subscribe makes the user's profile follow an author. Repeating it has no
// further effect.
type Subscribe struct {
	tx            domain.TxManager
	profiles      domain.ProfileRepository
	subscriptions domain.SubscriptionRepository
	logger        *slog.Logger
}

func NewSubscribe(tx domain.TxManager, profiles domain.ProfileRepository, subscriptions domain.SubscriptionRepository, logger *slog.Logger) *Subscribe {
	return &Subscribe{tx: tx, profiles: profiles, subscriptions: subscriptions, logger: logger}
}

func (uc *Subscribe) Execute(ctx context.Context, userID, authorID int64) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		subscriber, err := uc.profiles.GetOrCreateProfile(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := uc.profiles.FindProfileByID(ctx, authorID); err != nil {
			return err
		}

		sub := domain.Subscription{
			SubscriberID: subscriber.ID,
			AuthorID:     authorID,
			CreatedAt:    time.Now().UTC(),
		}
		if err := sub.Validate(); err != nil {
			return err
		}
		return uc.subscriptions.AddSubscription(ctx, sub)
	})
	if err != nil {
		return fmt.Errorf("subscribe to author %d: %w", authorID, err)
	}

	uc.logger.InfoContext(ctx, "subscribed", "user_id", userID, "author_id", authorID)
	return nil
}
