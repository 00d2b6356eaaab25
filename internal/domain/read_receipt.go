package domain

import "time"

// ReadReceipt records that a user has opened a post. There is at most one
// per (post, user) pair.
type ReadReceipt struct {
	ID     int64
	PostID int64
	UserID int64
	ReadAt time.Time
}

// NewReadReceipt stamps a receipt for userID opening postID now.
func NewReadReceipt(postID, userID int64) ReadReceipt {
	return ReadReceipt{PostID: postID, UserID: userID, ReadAt: time.Now().UTC()}
}
