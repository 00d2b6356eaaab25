package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// ViewPost returns a post and, for an authenticated viewer, records that
// the viewer has read it.
type ViewPost struct {
	posts    domain.PostRepository
	receipts domain.ReadReceiptRepository
	logger   *slog.Logger
}

func NewViewPost(posts domain.PostRepository, receipts domain.ReadReceiptRepository, logger *slog.Logger) *ViewPost {
	return &ViewPost{posts: posts, receipts: receipts, logger: logger}
}

func (uc *ViewPost) Execute(ctx context.Context, postID int64, viewer *domain.User) (*domain.Post, error) {
	post, err := uc.posts.FindPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("view post %d: %w", postID, err)
	}

	if viewer != nil {
		if err := uc.receipts.RecordRead(ctx, domain.NewReadReceipt(post.ID, viewer.ID)); err != nil {
			return nil, fmt.Errorf("record read of post %d: %w", postID, err)
		}
	}

	return post, nil
}
