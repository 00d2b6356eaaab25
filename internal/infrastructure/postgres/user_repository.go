package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blog/internal/domain"
)

const selectUserColumns = `SELECT id, username, email, password_hash, is_active, created_at FROM users`

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	query := `
		INSERT INTO users (username, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := conn(ctx, r.db).QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsActive, user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if hasPgCode(err, uniqueViolation) {
			return 0, domain.ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (r *Repository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findUser(ctx, selectUserColumns+` WHERE id = $1`, id)
}

func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, selectUserColumns+` WHERE username = $1`, username)
}

func (r *Repository) findUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}
