package domain

import "time"

// Subscription is a directed edge: SubscriberID follows AuthorID.
type Subscription struct {
	SubscriberID int64
	AuthorID     int64
	CreatedAt    time.Time
}

// Validate rejects edges that point at the subscriber itself.
func (s Subscription) Validate() error {
	if s.SubscriberID == s.AuthorID {
		return ErrSelfSubscription
	}
	return nil
}

// Subscriber is a follower that can be notified.
type Subscriber struct {
	ProfileID int64
	UserID    int64
	Username  string
	Email     string
}
