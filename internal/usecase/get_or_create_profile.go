package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// GetOrCreateProfile resolves the author profile of a user, creating an
// empty one on first access.
type GetOrCreateProfile struct {
	profiles domain.ProfileRepository
	logger   *slog.Logger
}

func NewGetOrCreateProfile(profiles domain.ProfileRepository, logger *slog.Logger) *GetOrCreateProfile {
	return &GetOrCreateProfile{profiles: profiles, logger: logger}
}

func (uc *GetOrCreateProfile) Execute(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := uc.profiles.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create profile for user %d: %w", userID, err)
	}
	return profile, nil
}
