package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blog/internal/domain"
)

// CreatePost stores a new draft authored by the user's profile.
type CreatePost struct {
	tx        domain.TxManager
	profiles  domain.ProfileRepository
	posts     domain.PostRepository
	validator domain.InputValidator
	logger    *slog.Logger
}

func NewCreatePost(tx domain.TxManager, profiles domain.ProfileRepository, posts domain.PostRepository, validator domain.InputValidator, logger *slog.Logger) *CreatePost {
	return &CreatePost{tx: tx, profiles: profiles, posts: posts, validator: validator, logger: logger}
}

func (uc *CreatePost) Execute(ctx context.Context, userID int64, in domain.PostInput) (*domain.Post, error) {
	in = in.Normalize()
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		author, err := uc.profiles.GetOrCreateProfile(ctx, userID)
		if err != nil {
			return err
		}
		post.AuthorID = author.ID
		post.Author = *author

		id, err := uc.posts.CreatePost(ctx, post)
		if err != nil {
			return err
		}
		post.ID = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	uc.logger.InfoContext(ctx, "post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}
