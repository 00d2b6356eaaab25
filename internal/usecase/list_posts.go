package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// ListPublishedPosts returns published posts, newest first.
type ListPublishedPosts struct {
	posts  domain.PostRepository
	logger *slog.Logger
}

func NewListPublishedPosts(posts domain.PostRepository, logger *slog.Logger) *ListPublishedPosts {
	return &ListPublishedPosts{posts: posts, logger: logger}
}

func (uc *ListPublishedPosts) Execute(ctx context.Context) ([]domain.Post, error) {
	posts, err := uc.posts.ListPublishedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

// ListAuthorPosts returns every post of one author, drafts included.
type ListAuthorPosts struct {
	posts  domain.PostRepository
	logger *slog.Logger
}

func NewListAuthorPosts(posts domain.PostRepository, logger *slog.Logger) *ListAuthorPosts {
	return &ListAuthorPosts{posts: posts, logger: logger}
}

func (uc *ListAuthorPosts) Execute(ctx context.Context, authorID int64) ([]domain.Post, error) {
	posts, err := uc.posts.ListPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list posts of author %d: %w", authorID, err)
	}
	return posts, nil
}

// ListFeed returns every post not written by authorID, flagged with the
// viewer's read state.
type ListFeed struct {
	posts  domain.PostRepository
	logger *slog.Logger
}

func NewListFeed(posts domain.PostRepository, logger *slog.Logger) *ListFeed {
	return &ListFeed{posts: posts, logger: logger}
}

func (uc *ListFeed) Execute(ctx context.Context, authorID int64, viewer *domain.User) ([]domain.FeedEntry, error) {
	var viewerID int64
	if viewer != nil {
		viewerID = viewer.ID
	}

	entries, err := uc.posts.ListFeed(ctx, authorID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list feed for author %d: %w", authorID, err)
	}
	return entries, nil
}
