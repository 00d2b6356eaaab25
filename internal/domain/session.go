package domain

import "time"

// Session is the server-side half of a login.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Viewer is the identity resolved for a request.
type Viewer struct {
	User    User
	Session Session
}
