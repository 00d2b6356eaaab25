package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// GetOwnPost loads a post for its author, for edit and confirmation pages.
type GetOwnPost struct {
	profiles domain.ProfileRepository
	posts    domain.PostRepository
	logger   *slog.Logger
}

func NewGetOwnPost(profiles domain.ProfileRepository, posts domain.PostRepository, logger *slog.Logger) *GetOwnPost {
	return &GetOwnPost{profiles: profiles, posts: posts, logger: logger}
}

func (uc *GetOwnPost) Execute(ctx context.Context, userID, postID int64) (*domain.Post, error) {
	post, err := uc.posts.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("find post %d: %w", postID, err)
	}
	if err := authorizeAuthor(ctx, uc.profiles, userID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// authorizeAuthor returns domain.ErrForbidden unless userID owns post.
func authorizeAuthor(ctx context.Context, profiles domain.ProfileRepository, userID int64, post *domain.Post) error {
	profile, err := profiles.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve profile: %w", err)
	}
	if !post.IsAuthoredBy(profile.ID) {
		return fmt.Errorf("%w: post %d belongs to profile %d", domain.ErrForbidden, post.ID, post.AuthorID)
	}
	return nil
}
