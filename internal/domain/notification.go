package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotificationStatus tracks an outbox row through delivery.
type NotificationStatus string

const (
	NotificationPending    NotificationStatus = "PENDING"
	NotificationProcessing NotificationStatus = "PROCESSING"
	NotificationSent       NotificationStatus = "SENT"
	NotificationFailed     NotificationStatus = "FAILED"
)

// Notification is one queued e-mail for one subscriber.
type Notification struct {
	ID           uuid.UUID
	PostID       int64
	Recipient    string
	Subject      string
	Body         string
	Status       NotificationStatus
	ErrorMessage *string
	CreatedAt    time.Time
	ClaimedAt    *time.Time
	ProcessedAt  *time.Time
}

// MailMessage is what a MailSender delivers.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// NewPostAnnouncement builds the notification sent to a subscriber when
// post is published. baseURL is the public site root.
func NewPostAnnouncement(post Post, author Profile, recipient, baseURL string) Notification {
	return Notification{
		ID:        uuid.New(),
		PostID:    post.ID,
		Recipient: recipient,
		Subject:   fmt.Sprintf(`"%s" - new post in %s %s.`, post.Title, author.Username, author.BlogName),
		Body:      "Link to new post: " + strings.TrimRight(baseURL, "/") + post.URL(),
		Status:    NotificationPending,
		CreatedAt: time.Now().UTC(),
	}
}

func (n Notification) Message() MailMessage {
	return MailMessage{To: n.Recipient, Subject: n.Subject, Body: n.Body}
}
