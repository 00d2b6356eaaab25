package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

type GetAuthor struct {
	profiles      domain.ProfileRepository
	subscriptions domain.SubscriptionRepository
	logger        *slog.Logger
}

func NewGetAuthor(profiles domain.ProfileRepository, subscriptions domain.SubscriptionRepository, logger *slog.Logger) *GetAuthor {
	return &GetAuthor{profiles: profiles, subscriptions: subscriptions, logger: logger}
}

func (uc *GetAuthor) Execute(ctx context.Context, authorID int64, viewer *domain.User) (*domain.AuthorSummary, error) {
	profile, err := uc.profiles.FindProfileByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("find author %d: %w", authorID, err)
	}

	subscribers, err := uc.subscriptions.ListSubscribers(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list subscribers of %d: %w", authorID, err)
	}

	summary := &domain.AuthorSummary{Profile: *profile, SubscriberCount: len(subscribers)}

	if viewer != nil {
		for _, s := range subscribers {
			if s.UserID == viewer.ID {
				summary.Subscribed = true
				break
			}
		}
	}

	return summary, nil
}
