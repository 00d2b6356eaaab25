package domain

//go:generate mockgen -destination=../mocks/mock_port.go -package=mocks blog/internal/domain MailSender,NotificationOutbox

import (
	"context"
	"time"
)

// TxManager runs fn inside a single database transaction. Repositories
// called with the ctx passed to fn join that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) (int64, error)
	FindUserByID(ctx context.Context, id int64) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
}

type ProfileRepository interface {
	// GetOrCreateProfile returns the profile owned by userID, inserting an
	// empty one if the user has none yet.
	GetOrCreateProfile(ctx context.Context, userID int64) (*Profile, error)
	FindProfileByID(ctx context.Context, id int64) (*Profile, error)
	ListProfiles(ctx context.Context) ([]AuthorSummary, error)
	UpdateBlogName(ctx context.Context, profileID int64, blogName string) error
}

type SubscriptionRepository interface {
	AddSubscription(ctx context.Context, sub Subscription) error
	RemoveSubscription(ctx context.Context, subscriberID, authorID int64) error
	ListSubscribedAuthorIDs(ctx context.Context, subscriberID int64) ([]int64, error)
	ListSubscribers(ctx context.Context, authorID int64) ([]Subscriber, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *Post) (int64, error)
	FindPostByID(ctx context.Context, id int64) (*Post, error)
	// FindPostByIDForUpdate locks the row until the surrounding transaction ends.
	FindPostByIDForUpdate(ctx context.Context, id int64) (*Post, error)
	UpdatePostContent(ctx context.Context, id int64, title, content string) error
	MarkPublished(ctx context.Context, id int64, at time.Time) error
	DeletePost(ctx context.Context, id int64) error
	ListPublishedPosts(ctx context.Context) ([]Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]Post, error)
	// ListFeed returns every post not written by excludedAuthorID. Read is
	// set from viewerUserID's receipts; a zero viewerUserID leaves it false.
	ListFeed(ctx context.Context, excludedAuthorID, viewerUserID int64) ([]FeedEntry, error)
}

type ReadReceiptRepository interface {
	RecordRead(ctx context.Context, receipt ReadReceipt) error
}

type NotificationOutbox interface {
	EnqueueNotifications(ctx context.Context, notifications []Notification) error
	FetchAndLockPending(ctx context.Context, limit int) ([]Notification, error)
	UpdateNotificationStatus(ctx context.Context, id string, status NotificationStatus, errMsg *string) error
	// ReleaseNotifications returns claimed rows that were never attempted
	// to PENDING.
	ReleaseNotifications(ctx context.Context, ids []string) error
	// RequeueStaleNotifications returns rows left in PROCESSING longer than
	// olderThan to PENDING.
	RequeueStaleNotifications(ctx context.Context, olderThan time.Duration) (int64, error)
	PruneNotifications(ctx context.Context, olderThan time.Duration) (int64, error)
}

type SessionStore interface {
	CreateSession(ctx context.Context, userID int64, ttl time.Duration) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// TokenCodec signs and verifies the cookie that references a session.
type TokenCodec interface {
	Issue(session Session) (string, error)
	// Parse returns the session id carried by a valid token.
	Parse(token string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}

// InputValidator checks tagged input structs.
type InputValidator interface {
	Validate(i any) error
}
