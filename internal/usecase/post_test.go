package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/domain"
	"blog/utils/validator"
)

func TestCreatePost(t *testing.T) {
	store := newStore()
	u, p := store.AddUser("A", "a@example.com", "A's Tech Blog", true)
	uc := NewCreatePost(store, store, store, newValidator(), testLogger)

	before := time.Now().UTC()
	post, err := uc.Execute(context.Background(), u.ID, domain.PostInput{Title: " Hello World ", Content: "first"})
	require.NoError(t, err)

	assert.NotZero(t, post.ID)
	assert.Equal(t, "Hello World", post.Title)
	assert.Equal(t, p.ID, post.AuthorID)
	assert.False(t, post.CreatedAt.Before(before))
	assert.Nil(t, post.PublishedAt)

	stored, err := store.FindPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublished())
}

func TestCreatePost_Validation(t *testing.T) {
	store := newStore()
	u, _ := store.AddUser("A", "", "", true)
	uc := NewCreatePost(store, store, store, newValidator(), testLogger)

	long := make([]byte, domain.MaxTitleLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name  string
		in    domain.PostInput
		field string
	}{
		{name: "empty title", in: domain.PostInput{Title: "  ", Content: "c"}, field: "title"},
		{name: "long title", in: domain.PostInput{Title: string(long), Content: "c"}, field: "title"},
		{name: "blank content", in: domain.PostInput{Title: "t", Content: "\n\t"}, field: "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), u.ID, tt.in)
			var verr *validator.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Errors, tt.field)
		})
	}
}

func TestUpdatePost(t *testing.T) {
	store := newStore()
	author, ap := store.AddUser("A", "", "", true)
	other, _ := store.AddUser("B", "", "", true)
	post := store.AddPost(ap.ID, "Old", nil)

	uc := NewUpdatePost(store, store, store, newValidator(), testLogger)
	ctx := context.Background()

	_, err := uc.Execute(ctx, other.ID, post.ID, domain.PostInput{Title: "Hijack", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := uc.Execute(ctx, author.ID, post.ID, domain.PostInput{Title: "New", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, post.CreatedAt, updated.CreatedAt)

	_, err = uc.Execute(ctx, author.ID, 404, domain.PostInput{Title: "New", Content: "body"})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	store := newStore()
	author, ap := store.AddUser("A", "", "", true)
	other, _ := store.AddUser("B", "", "", true)
	post := store.AddPost(ap.ID, "Doomed", ptr(time.Now()))
	require.NoError(t, store.RecordRead(context.Background(), domain.NewReadReceipt(post.ID, other.ID)))

	uc := NewDeletePost(store, store, store, testLogger)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Execute(ctx, other.ID, post.ID), domain.ErrForbidden)

	require.NoError(t, uc.Execute(ctx, author.ID, post.ID))
	_, err := store.FindPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	assert.Equal(t, 0, store.ReceiptCount(post.ID))

	assert.ErrorIs(t, uc.Execute(ctx, author.ID, post.ID), domain.ErrPostNotFound)
}

func TestGetOwnPost(t *testing.T) {
	store := newStore()
	author, ap := store.AddUser("A", "", "", true)
	other, _ := store.AddUser("B", "", "", true)
	post := store.AddPost(ap.ID, "Mine", nil)

	uc := NewGetOwnPost(store, store, testLogger)

	got, err := uc.Execute(context.Background(), author.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)

	_, err = uc.Execute(context.Background(), other.ID, post.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestViewPost_RecordsReceipts(t *testing.T) {
	store := newStore()
	_, ap := store.AddUser("A", "", "", true)
	reader, _ := store.AddUser("B", "", "", true)
	post := store.AddPost(ap.ID, "Read me", ptr(time.Now()))

	uc := NewViewPost(store, store, testLogger)
	ctx := context.Background()

	_, err := uc.Execute(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.ReceiptCount(post.ID))

	for i := 0; i < 2; i++ {
		got, err := uc.Execute(ctx, post.ID, &reader)
		require.NoError(t, err)
		assert.Equal(t, "Read me", got.Title)
		assert.Equal(t, "A", got.Author.Username)
	}
	assert.Equal(t, 1, store.ReceiptCount(post.ID))

	_, err = uc.Execute(ctx, 404, &reader)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestListPublishedPosts(t *testing.T) {
	store := newStore()
	_, ap := store.AddUser("A", "", "", true)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store.AddPost(ap.ID, "draft", nil)
	store.AddPost(ap.ID, "oldest", ptr(base))
	store.AddPost(ap.ID, "newest", ptr(base.Add(2*time.Hour)))
	store.AddPost(ap.ID, "middle", ptr(base.Add(time.Hour)))

	posts, err := NewListPublishedPosts(store, testLogger).Execute(context.Background())
	require.NoError(t, err)

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		assert.True(t, p.IsPublished())
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"newest", "middle", "oldest"}, titles)
}

func TestListAuthorPosts_IncludesDrafts(t *testing.T) {
	store := newStore()
	_, ap := store.AddUser("A", "", "", true)
	_, bp := store.AddUser("B", "", "", true)
	store.AddPost(ap.ID, "draft", nil)
	store.AddPost(ap.ID, "published", ptr(time.Now()))
	store.AddPost(bp.ID, "other", ptr(time.Now()))

	posts, err := NewListAuthorPosts(store, testLogger).Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "published", posts[0].Title)
	assert.Equal(t, "draft", posts[1].Title)
}

func TestListFeed(t *testing.T) {
	store := newStore()
	_, ap := store.AddUser("A", "", "", true)
	viewer, bp := store.AddUser("B", "", "", true)
	_, cp := store.AddUser("C", "", "", true)
	own := store.AddPost(bp.ID, "own", ptr(time.Now()))
	read := store.AddPost(ap.ID, "read", ptr(time.Now()))
	unread := store.AddPost(cp.ID, "unread", nil)
	require.NoError(t, store.RecordRead(context.Background(), domain.NewReadReceipt(read.ID, viewer.ID)))

	uc := NewListFeed(store, testLogger)

	entries, err := uc.Execute(context.Background(), bp.ID, &viewer)
	require.NoError(t, err)

	readState := map[int64]bool{}
	for _, e := range entries {
		readState[e.ID] = e.Read
	}
	assert.NotContains(t, readState, own.ID)
	assert.True(t, readState[read.ID])
	assert.False(t, readState[unread.ID])

	anon, err := uc.Execute(context.Background(), bp.ID, nil)
	require.NoError(t, err)
	for _, e := range anon {
		assert.False(t, e.Read)
	}
}
