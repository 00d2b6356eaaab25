package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// UpdatePost changes title and content. Only the author may do so.
type UpdatePost struct {
	tx        domain.TxManager
	profiles  domain.ProfileRepository
	posts     domain.PostRepository
	validator domain.InputValidator
	logger    *slog.Logger
}

func NewUpdatePost(tx domain.TxManager, profiles domain.ProfileRepository, posts domain.PostRepository, validator domain.InputValidator, logger *slog.Logger) *UpdatePost {
	return &UpdatePost{tx: tx, profiles: profiles, posts: posts, validator: validator, logger: logger}
}

func (uc *UpdatePost) Execute(ctx context.Context, userID, postID int64, in domain.PostInput) (*domain.Post, error) {
	in = in.Normalize()
	if err := uc.validator.Validate(in); err != nil {
		return nil, err
	}

	var post *domain.Post
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.posts.FindPostByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}
		if err := authorizeAuthor(ctx, uc.profiles, userID, p); err != nil {
			return err
		}
		if err := uc.posts.UpdatePostContent(ctx, postID, in.Title, in.Content); err != nil {
			return err
		}
		p.Title = in.Title
		p.Content = in.Content
		post = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}

	uc.logger.InfoContext(ctx, "post updated", "post_id", postID)
	return post, nil
}
