// Package testutil holds in-memory implementations of the domain ports for
// use-case and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"blog/internal/domain"
)

type pair [2]int64

// Store implements every repository port plus domain.TxManager. A failed
// WithinTx restores the state captured when it began.
type Store struct {
	mu sync.Mutex

	users    map[int64]domain.User
	profiles map[int64]domain.Profile
	subs     map[pair]time.Time
	posts    map[int64]domain.Post
	receipts map[pair]time.Time
	outbox   []domain.Notification

	nextUser, nextProfile, nextPost int64

	// Errs makes the named method return the given error.
	Errs map[string]error

	Commits, Rollbacks int
}

func NewStore() *Store {
	return &Store{
		users:    map[int64]domain.User{},
		profiles: map[int64]domain.Profile{},
		subs:     map[pair]time.Time{},
		posts:    map[int64]domain.Post{},
		receipts: map[pair]time.Time{},
		Errs:     map[string]error{},
	}
}

func (s *Store) fail(method string) error {
	return s.Errs[method]
}

type snapshot struct {
	users    map[int64]domain.User
	profiles map[int64]domain.Profile
	subs     map[pair]time.Time
	posts    map[int64]domain.Post
	receipts map[pair]time.Time
	outbox   []domain.Notification
	ids      [3]int64
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	snap := snapshot{
		users:    copyMap(s.users),
		profiles: copyMap(s.profiles),
		subs:     copyMap(s.subs),
		posts:    copyMap(s.posts),
		receipts: copyMap(s.receipts),
		outbox:   append([]domain.Notification(nil), s.outbox...),
		ids:      [3]int64{s.nextUser, s.nextProfile, s.nextPost},
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.users, s.profiles, s.subs = snap.users, snap.profiles, snap.subs
		s.posts, s.receipts, s.outbox = snap.posts, snap.receipts, snap.outbox
		s.nextUser, s.nextProfile, s.nextPost = snap.ids[0], snap.ids[1], snap.ids[2]
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

// Users

func (s *Store) CreateUser(_ context.Context, user *domain.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateUser"); err != nil {
		return 0, err
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return 0, domain.ErrUserAlreadyExists
		}
	}
	s.nextUser++
	u := *user
	u.ID = s.nextUser
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *Store) FindUserByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUserByID"); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindUserByUsername"); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// SetUserActive flips an account's active flag.
func (s *Store) SetUserActive(id int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[id]
	u.IsActive = active
	s.users[id] = u
}

// Profiles

func (s *Store) profileFor(userID int64) (domain.Profile, bool) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, true
		}
	}
	return domain.Profile{}, false
}

func (s *Store) withUsername(p domain.Profile) domain.Profile {
	p.Username = s.users[p.UserID].Username
	return p
}

func (s *Store) GetOrCreateProfile(_ context.Context, userID int64) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetOrCreateProfile"); err != nil {
		return nil, err
	}
	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	p, ok := s.profileFor(userID)
	if !ok {
		s.nextProfile++
		p = domain.Profile{ID: s.nextProfile, UserID: userID}
		s.profiles[p.ID] = p
	}
	p = s.withUsername(p)
	return &p, nil
}

func (s *Store) FindProfileByID(_ context.Context, id int64) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindProfileByID"); err != nil {
		return nil, err
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p = s.withUsername(p)
	return &p, nil
}

func (s *Store) ListProfiles(_ context.Context) ([]domain.AuthorSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListProfiles"); err != nil {
		return nil, err
	}
	var out []domain.AuthorSummary
	for _, p := range s.profiles {
		count := 0
		for k := range s.subs {
			if k[1] == p.ID {
				count++
			}
		}
		out = append(out, domain.AuthorSummary{Profile: s.withUsername(p), SubscriberCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateBlogName(_ context.Context, profileID int64, blogName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateBlogName"); err != nil {
		return err
	}
	p, ok := s.profiles[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.BlogName = blogName
	s.profiles[profileID] = p
	return nil
}

// Subscriptions

func (s *Store) AddSubscription(_ context.Context, sub domain.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("AddSubscription"); err != nil {
		return err
	}
	if _, ok := s.profiles[sub.AuthorID]; !ok {
		return domain.ErrProfileNotFound
	}
	k := pair{sub.SubscriberID, sub.AuthorID}
	if _, ok := s.subs[k]; !ok {
		s.subs[k] = sub.CreatedAt
	}
	return nil
}

func (s *Store) RemoveSubscription(_ context.Context, subscriberID, authorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("RemoveSubscription"); err != nil {
		return err
	}
	delete(s.subs, pair{subscriberID, authorID})
	return nil
}

// HasSubscription reports whether the follow edge exists.
func (s *Store) HasSubscription(subscriberID, authorID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subs[pair{subscriberID, authorID}]
	return ok
}

func (s *Store) ListSubscribedAuthorIDs(_ context.Context, subscriberID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for k := range s.subs {
		if k[0] == subscriberID {
			ids = append(ids, k[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) ListSubscribers(_ context.Context, authorID int64) ([]domain.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListSubscribers"); err != nil {
		return nil, err
	}
	var out []domain.Subscriber
	for k := range s.subs {
		if k[1] != authorID {
			continue
		}
		p := s.profiles[k[0]]
		u := s.users[p.UserID]
		out = append(out, domain.Subscriber{ProfileID: p.ID, UserID: u.ID, Username: u.Username, Email: u.Email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out, nil
}

// SubscriptionCount reports the number of stored edges.
func (s *Store) SubscriptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Posts

func (s *Store) hydrate(p domain.Post) domain.Post {
	p.Author = s.withUsername(s.profiles[p.AuthorID])
	return p
}

func (s *Store) CreatePost(_ context.Context, post *domain.Post) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreatePost"); err != nil {
		return 0, err
	}
	if _, ok := s.profiles[post.AuthorID]; !ok {
		return 0, domain.ErrProfileNotFound
	}
	s.nextPost++
	p := *post
	p.ID = s.nextPost
	p.PublishedAt = nil
	s.posts[p.ID] = p
	return p.ID, nil
}

func (s *Store) FindPostByID(_ context.Context, id int64) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindPostByID"); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p = s.hydrate(p)
	return &p, nil
}

func (s *Store) FindPostByIDForUpdate(ctx context.Context, id int64) (*domain.Post, error) {
	return s.FindPostByID(ctx, id)
}

func (s *Store) UpdatePostContent(_ context.Context, id int64, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdatePostContent"); err != nil {
		return err
	}
	p, ok := s.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Title, p.Content = title, content
	s.posts[id] = p
	return nil
}

func (s *Store) MarkPublished(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("MarkPublished"); err != nil {
		return err
	}
	p, ok := s.posts[id]
	if !ok || p.PublishedAt != nil {
		return domain.ErrPostNotFound
	}
	p.PublishedAt = &at
	s.posts[id] = p
	return nil
}

func (s *Store) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeletePost"); err != nil {
		return err
	}
	if _, ok := s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(s.posts, id)
	for k := range s.receipts {
		if k[0] == id {
			delete(s.receipts, k)
		}
	}
	kept := s.outbox[:0]
	for _, n := range s.outbox {
		if n.PostID != id {
			kept = append(kept, n)
		}
	}
	s.outbox = kept
	return nil
}

// sortPosts orders by published_at desc with drafts last, then id desc.
func sortPosts(posts []domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i].PublishedAt, posts[j].PublishedAt
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return posts[i].ID > posts[j].ID
	})
}

func (s *Store) selectPosts(keep func(domain.Post) bool) []domain.Post {
	var out []domain.Post
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, s.hydrate(p))
		}
	}
	sortPosts(out)
	return out
}

func (s *Store) ListPublishedPosts(_ context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListPublishedPosts"); err != nil {
		return nil, err
	}
	return s.selectPosts(func(p domain.Post) bool { return p.PublishedAt != nil }), nil
}

func (s *Store) ListPostsByAuthor(_ context.Context, authorID int64) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListPostsByAuthor"); err != nil {
		return nil, err
	}
	return s.selectPosts(func(p domain.Post) bool { return p.AuthorID == authorID }), nil
}

func (s *Store) ListFeed(_ context.Context, excludedAuthorID, viewerUserID int64) ([]domain.FeedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListFeed"); err != nil {
		return nil, err
	}
	posts := s.selectPosts(func(p domain.Post) bool { return p.AuthorID != excludedAuthorID })
	out := make([]domain.FeedEntry, 0, len(posts))
	for _, p := range posts {
		_, read := s.receipts[pair{p.ID, viewerUserID}]
		out = append(out, domain.FeedEntry{Post: p, Read: read})
	}
	return out, nil
}

// Read receipts

func (s *Store) RecordRead(_ context.Context, receipt domain.ReadReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("RecordRead"); err != nil {
		return err
	}
	if _, ok := s.posts[receipt.PostID]; !ok {
		return domain.ErrPostNotFound
	}
	k := pair{receipt.PostID, receipt.UserID}
	if _, ok := s.receipts[k]; !ok {
		s.receipts[k] = receipt.ReadAt
	}
	return nil
}

// ReceiptCount reports how many receipts exist for a post.
func (s *Store) ReceiptCount(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.receipts {
		if k[0] == postID {
			n++
		}
	}
	return n
}

// Outbox

func (s *Store) EnqueueNotifications(_ context.Context, notifications []domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("EnqueueNotifications"); err != nil {
		return err
	}
	s.outbox = append(s.outbox, notifications...)
	return nil
}

func (s *Store) FetchAndLockPending(_ context.Context, limit int) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FetchAndLockPending"); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var claimed []domain.Notification
	for i := range s.outbox {
		if len(claimed) == limit {
			break
		}
		if s.outbox[i].Status == domain.NotificationPending {
			s.outbox[i].Status = domain.NotificationProcessing
			s.outbox[i].ClaimedAt = &now
			claimed = append(claimed, s.outbox[i])
		}
	}
	return claimed, nil
}

func (s *Store) UpdateNotificationStatus(_ context.Context, id string, status domain.NotificationStatus, errMsg *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].ID.String() == id {
			now := time.Now().UTC()
			s.outbox[i].Status = status
			s.outbox[i].ErrorMessage = errMsg
			s.outbox[i].ProcessedAt = &now
			return nil
		}
	}
	return fmt.Errorf("notification %s not found", id)
}

func (s *Store) ReleaseNotifications(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ReleaseNotifications"); err != nil {
		return err
	}
	release := make(map[string]bool, len(ids))
	for _, id := range ids {
		release[id] = true
	}
	for i := range s.outbox {
		if release[s.outbox[i].ID.String()] && s.outbox[i].Status == domain.NotificationProcessing {
			s.outbox[i].Status = domain.NotificationPending
			s.outbox[i].ClaimedAt = nil
		}
	}
	return nil
}

func (s *Store) RequeueStaleNotifications(_ context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("RequeueStaleNotifications"); err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().Add(-olderThan)
	var n int64
	for i := range s.outbox {
		o := &s.outbox[i]
		if o.Status == domain.NotificationProcessing && o.ProcessedAt == nil &&
			o.ClaimedAt != nil && o.ClaimedAt.Before(cutoff) {
			o.Status = domain.NotificationPending
			o.ClaimedAt = nil
			n++
		}
	}
	return n, nil
}

// BackdateClaims moves every claim timestamp d into the past.
func (s *Store) BackdateClaims(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if c := s.outbox[i].ClaimedAt; c != nil {
			t := c.Add(-d)
			s.outbox[i].ClaimedAt = &t
		}
	}
}

func (s *Store) PruneNotifications(_ context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().UTC().Add(-olderThan)
	var pruned int64
	kept := s.outbox[:0]
	for _, n := range s.outbox {
		if n.Status == domain.NotificationSent && n.ProcessedAt != nil && n.ProcessedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, n)
	}
	s.outbox = kept
	return pruned, nil
}

// Outbox returns a copy of the queued notifications.
func (s *Store) Outbox() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.outbox...)
}

// Seeding helpers

// AddUser stores an account with its profile and returns both.
func (s *Store) AddUser(username, email, blogName string, active bool) (domain.User, domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUser++
	u := domain.User{
		ID:           s.nextUser,
		Username:     username,
		Email:        email,
		PasswordHash: "hash:" + username,
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.nextProfile++
	p := domain.Profile{ID: s.nextProfile, UserID: u.ID, BlogName: blogName, Username: username}
	s.profiles[p.ID] = p
	return u, p
}

// AddPost stores a post; a nil publishedAt makes it a draft.
func (s *Store) AddPost(authorID int64, title string, publishedAt *time.Time) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPost++
	p := domain.Post{
		ID:          s.nextPost,
		AuthorID:    authorID,
		Title:       title,
		Content:     "content of " + title,
		CreatedAt:   time.Now().UTC(),
		PublishedAt: publishedAt,
	}
	s.posts[p.ID] = p
	return s.hydrate(p)
}

// Subscribe stores a follow edge directly.
func (s *Store) Subscribe(subscriberProfileID, authorProfileID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[pair{subscriberProfileID, authorProfileID}] = time.Now().UTC()
}

// FakeHasher treats "hash:<password>" as the hash of password.
type FakeHasher struct{}

func (FakeHasher) Hash(password string) (string, error) {
	return "hash:" + password, nil
}

func (FakeHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// SessionStore keeps sessions in memory.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]domain.Session{}}
}

func (s *SessionStore) CreateSession(_ context.Context, userID int64, ttl time.Duration) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	sess := domain.Session{ID: uuid.NewString(), UserID: userID, CreatedAt: now, ExpiresAt: now.Add(ttl)}
	s.sessions[sess.ID] = sess
	return &sess, nil
}

func (s *SessionStore) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// TokenCodec encodes a session as "token:<sid>".
type TokenCodec struct{}

func (TokenCodec) Issue(session domain.Session) (string, error) {
	return "token:" + session.ID, nil
}

func (TokenCodec) Parse(token string) (string, error) {
	sid, ok := strings.CutPrefix(token, "token:")
	if !ok || sid == "" {
		return "", domain.ErrInvalidSession
	}
	return sid, nil
}

// PermissiveValidator accepts every input.
type PermissiveValidator struct{}

func (PermissiveValidator) Validate(any) error { return nil }

// RecordingSender captures sent mail and fails for listed recipients.
type RecordingSender struct {
	mu     sync.Mutex
	Sent   []domain.MailMessage
	FailTo map[string]error
}

func (r *RecordingSender) Send(_ context.Context, msg domain.MailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.FailTo[msg.To]; ok {
		return err
	}
	r.Sent = append(r.Sent, msg)
	return nil
}
