package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blog/internal/domain"
)

const selectProfileColumns = `
	SELECT p.id, p.user_id, p.blog_name, u.username
	FROM profiles p
	JOIN users u ON u.id = p.user_id
`

// GetOrCreateProfile inserts an empty profile unless one exists and returns
// the stored row. Concurrent callers converge on the same profile.
func (r *Repository) GetOrCreateProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	q := conn(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO profiles (user_id, blog_name)
		VALUES ($1, '')
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		if hasPgCode(err, foreignKeyViolation) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}

	return r.findProfile(ctx, selectProfileColumns+` WHERE p.user_id = $1`, userID)
}

func (r *Repository) FindProfileByID(ctx context.Context, id int64) (*domain.Profile, error) {
	return r.findProfile(ctx, selectProfileColumns+` WHERE p.id = $1`, id)
}

func (r *Repository) findProfile(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var p domain.Profile
	err := conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(&p.ID, &p.UserID, &p.BlogName, &p.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &p, nil
}

// ListProfiles returns every profile with its subscriber count, ordered by id.
func (r *Repository) ListProfiles(ctx context.Context) ([]domain.AuthorSummary, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `
		SELECT p.id, p.user_id, p.blog_name, u.username, COUNT(s.subscriber_id)
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN subscriptions s ON s.author_id = p.id
		GROUP BY p.id, u.username
		ORDER BY p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var authors []domain.AuthorSummary
	for rows.Next() {
		var a domain.AuthorSummary
		if err := rows.Scan(&a.ID, &a.UserID, &a.BlogName, &a.Username, &a.SubscriberCount); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return authors, nil
}

func (r *Repository) UpdateBlogName(ctx context.Context, profileID int64, blogName string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `UPDATE profiles SET blog_name = $1 WHERE id = $2`, blogName, profileID)
	if err != nil {
		return fmt.Errorf("failed to update blog name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
