package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
)

func TestRepository_AddSubscription(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectExec("ON CONFLICT \\(subscriber_id, author_id\\) DO NOTHING").
		WithArgs(int64(2), int64(1), now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs(int64(2), int64(99), now).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolation})

	repo := NewRepository(mock)

	assert.NoError(t, repo.AddSubscription(context.Background(), domain.Subscription{SubscriberID: 2, AuthorID: 1, CreatedAt: now}))
	err = repo.AddSubscription(context.Background(), domain.Subscription{SubscriberID: 2, AuthorID: 99, CreatedAt: now})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RemoveSubscription(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// Removing a missing edge affects no rows and is not an error.
	mock.ExpectExec("DELETE FROM subscriptions").WithArgs(int64(2), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepository(mock)
	assert.NoError(t, repo.RemoveSubscription(context.Background(), 2, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListSubscribers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM subscriptions s").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"profile_id", "user_id", "username", "email"}).
			AddRow(int64(2), int64(20), "B", "b@example.com").
			AddRow(int64(3), int64(30), "C", ""))

	repo := NewRepository(mock)
	subs, err := repo.ListSubscribers(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "b@example.com", subs[0].Email)
	assert.Equal(t, int64(30), subs[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListSubscribedAuthorIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT author_id FROM subscriptions").WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"author_id"}).AddRow(int64(1)).AddRow(int64(4)))

	repo := NewRepository(mock)

	ids, err := repo.ListSubscribedAuthorIDs(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
