package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
)

func TestRepository_CreateUser(t *testing.T) {
	now := time.Now().UTC()
	user := &domain.User{Username: "alice", Email: "a@example.com", PasswordHash: "hash", IsActive: true, CreatedAt: now}

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs("alice", "a@example.com", "hash", true, now).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
			},
			wantID: 11,
		},
		{
			name: "duplicate username",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO users").
					WithArgs("alice", "a@example.com", "hash", true, now).
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
			},
			wantErr: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)
			repo := NewRepository(mock)

			id, err := repo.CreateUser(context.Background(), user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindUserByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, username, email, password_hash, is_active, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "is_active", "created_at"}).
			AddRow(int64(1), "alice", "a@example.com", "hash", false, now))
	mock.ExpectQuery("FROM users").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	repo := NewRepository(mock)

	u, err := repo.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.IsActive)

	_, err = repo.FindUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
