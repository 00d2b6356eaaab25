package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"blog/internal/domain"
	"blog/metrics"
)

// PublishPost moves a draft to published and queues one announcement per
// current subscriber that has an e-mail address. The outbox rows are
// written in the same transaction as the state change. Publishing an
// already published post changes nothing.
type PublishPost struct {
	tx            domain.TxManager
	profiles      domain.ProfileRepository
	posts         domain.PostRepository
	subscriptions domain.SubscriptionRepository
	outbox        domain.NotificationOutbox
	baseURL       string
	logger        *slog.Logger
}

func NewPublishPost(
	tx domain.TxManager,
	profiles domain.ProfileRepository,
	posts domain.PostRepository,
	subscriptions domain.SubscriptionRepository,
	outbox domain.NotificationOutbox,
	baseURL string,
	logger *slog.Logger,
) *PublishPost {
	return &PublishPost{
		tx:            tx,
		profiles:      profiles,
		posts:         posts,
		subscriptions: subscriptions,
		outbox:        outbox,
		baseURL:       baseURL,
		logger:        logger,
	}
}

func (uc *PublishPost) Execute(ctx context.Context, userID, postID int64) (*domain.Post, error) {
	var (
		post      *domain.Post
		published bool
		queued    int
	)

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.posts.FindPostByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}
		if err := authorizeAuthor(ctx, uc.profiles, userID, p); err != nil {
			return err
		}
		post = p

		now := time.Now().UTC()
		if !p.Publish(now) {
			return nil
		}
		if err := uc.posts.MarkPublished(ctx, p.ID, now); err != nil {
			return err
		}
		published = true

		subscribers, err := uc.subscriptions.ListSubscribers(ctx, p.AuthorID)
		if err != nil {
			return err
		}

		notifications := make([]domain.Notification, 0, len(subscribers))
		for _, s := range subscribers {
			if s.Email == "" {
				continue
			}
			notifications = append(notifications, domain.NewPostAnnouncement(*p, p.Author, s.Email, uc.baseURL))
		}
		if len(notifications) == 0 {
			return nil
		}
		if err := uc.outbox.EnqueueNotifications(ctx, notifications); err != nil {
			return err
		}
		queued = len(notifications)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publish post %d: %w", postID, err)
	}

	if !published {
		uc.logger.InfoContext(ctx, "post already published", "post_id", postID)
		return post, nil
	}

	metrics.RecordPublish(queued)
	uc.logger.InfoContext(ctx, "post published", "post_id", postID, "notifications_queued", queued)
	return post, nil
}
