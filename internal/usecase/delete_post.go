package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// DeletePost removes a post. Read receipts and queued notifications go
// with it through cascading foreign keys.
type DeletePost struct {
	tx       domain.TxManager
	profiles domain.ProfileRepository
	posts    domain.PostRepository
	logger   *slog.Logger
}

func NewDeletePost(tx domain.TxManager, profiles domain.ProfileRepository, posts domain.PostRepository, logger *slog.Logger) *DeletePost {
	return &DeletePost{tx: tx, profiles: profiles, posts: posts, logger: logger}
}

func (uc *DeletePost) Execute(ctx context.Context, userID, postID int64) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.posts.FindPostByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}
		if err := authorizeAuthor(ctx, uc.profiles, userID, p); err != nil {
			return err
		}
		return uc.posts.DeletePost(ctx, postID)
	})
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	uc.logger.InfoContext(ctx, "post deleted", "post_id", postID, "user_id", userID)
	return nil
}
