package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// ListAuthors returns every author. For an authenticated viewer it also
// marks the authors the viewer follows.
type ListAuthors struct {
	profiles      domain.ProfileRepository
	subscriptions domain.SubscriptionRepository
	logger        *slog.Logger
}

func NewListAuthors(profiles domain.ProfileRepository, subscriptions domain.SubscriptionRepository, logger *slog.Logger) *ListAuthors {
	return &ListAuthors{profiles: profiles, subscriptions: subscriptions, logger: logger}
}

// Execute accepts a nil viewer for anonymous requests.
func (uc *ListAuthors) Execute(ctx context.Context, viewer *domain.User) (*domain.AuthorDirectory, error) {
	dir := &domain.AuthorDirectory{}

	if viewer != nil {
		profile, err := uc.profiles.GetOrCreateProfile(ctx, viewer.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve viewer profile: %w", err)
		}
		dir.Viewer = profile
	}

	authors, err := uc.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	if dir.Viewer != nil {
		ids, err := uc.subscriptions.ListSubscribedAuthorIDs(ctx, dir.Viewer.ID)
		if err != nil {
			return nil, fmt.Errorf("list viewer subscriptions: %w", err)
		}
		followed := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			followed[id] = struct{}{}
		}
		for i := range authors {
			_, authors[i].Subscribed = followed[authors[i].ID]
		}
	}

	dir.Authors = authors
	return dir, nil
}
