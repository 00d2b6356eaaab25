package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
)

var postColumns = []string{
	"id", "author_id", "title", "content", "created_at", "published_at",
	"user_id", "blog_name", "username",
}

func TestRepository_CreatePost(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO posts").
		WithArgs(int64(1), "Hello World", "body", now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := NewRepository(mock)
	id, err := repo.CreatePost(context.Background(), &domain.Post{
		AuthorID: 1, Title: "Hello World", Content: "body", CreatedAt: now,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindPostByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE p.id = ").WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(postColumns).
			AddRow(int64(5), int64(1), "Draft", "body", created, (*time.Time)(nil), int64(10), "A's Tech Blog", "A"))
	mock.ExpectQuery("WHERE p.id = ").WithArgs(int64(6)).
		WillReturnError(pgx.ErrNoRows)

	repo := NewRepository(mock)

	p, err := repo.FindPostByID(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, p.IsPublished())
	assert.Equal(t, int64(1), p.Author.ID)
	assert.Equal(t, "A", p.Author.Username)
	assert.Equal(t, created, p.CreatedAt)

	_, err = repo.FindPostByID(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindPostByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	published := time.Now().UTC()
	mock.ExpectQuery("FOR UPDATE OF p").WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(postColumns).
			AddRow(int64(5), int64(1), "T", "C", published, &published, int64(10), "", "A"))

	repo := NewRepository(mock)
	p, err := repo.FindPostByIDForUpdate(context.Background(), 5)

	require.NoError(t, err)
	assert.True(t, p.IsPublished())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListPublishedPosts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	mock.ExpectQuery("WHERE p.published_at IS NOT NULL").
		WillReturnRows(pgxmock.NewRows(postColumns).
			AddRow(int64(2), int64(1), "Newer", "c", older, &newer, int64(10), "Blog", "A").
			AddRow(int64(1), int64(1), "Older", "c", older, &older, int64(10), "Blog", "A"))

	repo := NewRepository(mock)
	posts, err := repo.ListPublishedPosts(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, newer, *posts[0].PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListPostsByAuthor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("WHERE p.author_id = ").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(postColumns).
			AddRow(int64(2), int64(1), "Published", "c", now, &now, int64(10), "Blog", "A").
			AddRow(int64(3), int64(1), "Draft", "c", now, (*time.Time)(nil), int64(10), "Blog", "A"))

	repo := NewRepository(mock)
	posts, err := repo.ListPostsByAuthor(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.True(t, posts[0].IsPublished())
	assert.False(t, posts[1].IsPublished())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListFeed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("WHERE p.author_id <> ").WithArgs(int64(1), int64(20)).
		WillReturnRows(pgxmock.NewRows(append(postColumns, "read")).
			AddRow(int64(7), int64(2), "Seen", "c", now, &now, int64(20), "B blog", "B", true).
			AddRow(int64(8), int64(3), "Unseen", "c", now, (*time.Time)(nil), int64(30), "C blog", "C", false))

	repo := NewRepository(mock)
	entries, err := repo.ListFeed(context.Background(), 1, 20)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Read)
	assert.False(t, entries[1].Read)
	assert.Equal(t, "C", entries[1].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PostMutations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now().UTC()
	mock.ExpectExec("UPDATE posts SET title").WithArgs("T", "C", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE posts SET published_at").WithArgs(at, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE posts SET published_at").WithArgs(at, int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("DELETE FROM posts").WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepository(mock)
	ctx := context.Background()

	assert.NoError(t, repo.UpdatePostContent(ctx, 1, "T", "C"))
	assert.NoError(t, repo.MarkPublished(ctx, 1, at))
	assert.ErrorIs(t, repo.MarkPublished(ctx, 2, at), domain.ErrPostNotFound)
	assert.ErrorIs(t, repo.DeletePost(ctx, 3), domain.ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RecordRead(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now().UTC()
	// A second view hits the conflict and inserts nothing.
	mock.ExpectExec("ON CONFLICT \\(post_id, user_id\\) DO NOTHING").WithArgs(int64(5), int64(20), at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO read_receipts").WithArgs(int64(5), int64(20), at).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := NewRepository(mock)
	receipt := domain.ReadReceipt{PostID: 5, UserID: 20, ReadAt: at}
	assert.NoError(t, repo.RecordRead(context.Background(), receipt))
	assert.NoError(t, repo.RecordRead(context.Background(), receipt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
