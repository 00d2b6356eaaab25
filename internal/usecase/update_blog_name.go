package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"blog/internal/domain"
)

// UpdateBlogName lets a user rename their own blog.
type UpdateBlogName struct {
	tx        domain.TxManager
	profiles  domain.ProfileRepository
	validator domain.InputValidator
	logger    *slog.Logger
}

func NewUpdateBlogName(tx domain.TxManager, profiles domain.ProfileRepository, validator domain.InputValidator, logger *slog.Logger) *UpdateBlogName {
	return &UpdateBlogName{tx: tx, profiles: profiles, validator: validator, logger: logger}
}

func (uc *UpdateBlogName) Execute(ctx context.Context, userID int64, in domain.ProfileInput) (*domain.Profile, error) {
	in.BlogName = strings.TrimSpace(in.BlogName)
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}

	var profile *domain.Profile
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.profiles.GetOrCreateProfile(ctx, userID)
		if err != nil {
			return err
		}
		if err := uc.profiles.UpdateBlogName(ctx, p.ID, in.BlogName); err != nil {
			return err
		}
		p.BlogName = in.BlogName
		profile = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update blog name: %w", err)
	}

	uc.logger.InfoContext(ctx, "blog name updated", "profile_id", profile.ID)
	return profile, nil
}
