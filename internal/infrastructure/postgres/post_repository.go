package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"blog/internal/domain"
)

const selectPostColumns = `
	SELECT p.id, p.author_id, p.title, p.content, p.created_at, p.published_at,
		a.user_id, a.blog_name, u.username
	FROM posts p
	JOIN profiles a ON a.id = p.author_id
	JOIN users u ON u.id = a.user_id
`

func scanPost(row pgx.Row, extra ...any) (domain.Post, error) {
	var p domain.Post
	dest := []any{
		&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt, &p.PublishedAt,
		&p.Author.UserID, &p.Author.BlogName, &p.Author.Username,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Post{}, err
	}
	p.Author.ID = p.AuthorID
	return p, nil
}

func (r *Repository) CreatePost(ctx context.Context, post *domain.Post) (int64, error) {
	var id int64
	err := conn(ctx, r.db).QueryRow(ctx, `
		INSERT INTO posts (author_id, title, content, created_at, published_at)
		VALUES ($1, $2, $3, $4, NULL)
		RETURNING id
	`, post.AuthorID, post.Title, post.Content, post.CreatedAt).Scan(&id)
	if err != nil {
		if hasPgCode(err, foreignKeyViolation) {
			return 0, domain.ErrProfileNotFound
		}
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (r *Repository) FindPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	return r.findPost(ctx, selectPostColumns+` WHERE p.id = $1`, id)
}

func (r *Repository) FindPostByIDForUpdate(ctx context.Context, id int64) (*domain.Post, error) {
	return r.findPost(ctx, selectPostColumns+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *Repository) findPost(ctx context.Context, query string, id int64) (*domain.Post, error) {
	p, err := scanPost(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	return &p, nil
}

func (r *Repository) UpdatePostContent(ctx context.Context, id int64, title, content string) error {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE posts SET title = $1, content = $2 WHERE id = $3`, title, content, id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// MarkPublished sets published_at on a draft. It never overwrites an
// existing timestamp.
func (r *Repository) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE posts SET published_at = $1 WHERE id = $2 AND published_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPublishedPosts(ctx context.Context) ([]domain.Post, error) {
	return r.listPosts(ctx, selectPostColumns+`
		WHERE p.published_at IS NOT NULL
		ORDER BY p.published_at DESC, p.id DESC
	`)
}

// ListPostsByAuthor includes drafts.
func (r *Repository) ListPostsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	return r.listPosts(ctx, selectPostColumns+`
		WHERE p.author_id = $1
		ORDER BY p.published_at DESC NULLS LAST, p.id DESC
	`, authorID)
}

func (r *Repository) listPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

func (r *Repository) ListFeed(ctx context.Context, excludedAuthorID, viewerUserID int64) ([]domain.FeedEntry, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT p.id, p.author_id, p.title, p.content, p.created_at, p.published_at,
			a.user_id, a.blog_name, u.username,
			EXISTS (SELECT 1 FROM read_receipts rr WHERE rr.post_id = p.id AND rr.user_id = $2)
		FROM posts p
		JOIN profiles a ON a.id = p.author_id
		JOIN users u ON u.id = a.user_id
		WHERE p.author_id <> $1
		ORDER BY p.published_at DESC NULLS LAST, p.id DESC
	`, excludedAuthorID, viewerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	defer rows.Close()

	var entries []domain.FeedEntry
	for rows.Next() {
		var read bool
		p, err := scanPost(rows, &read)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, domain.FeedEntry{Post: p, Read: read})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed: %w", err)
	}
	return entries, nil
}
