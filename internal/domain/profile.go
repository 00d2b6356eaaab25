package domain

import "fmt"

// MaxBlogNameLength bounds Profile.BlogName.
const MaxBlogNameLength = 1024

// Profile is the author identity of a user. Every user has exactly one.
type Profile struct {
	ID       int64
	UserID   int64
	BlogName string

	// Username is joined from users for display.
	Username string
}

func (p Profile) URL() string {
	return fmt.Sprintf("/author/%d/", p.ID)
}

func (p Profile) BlogURL() string {
	return fmt.Sprintf("/author/%d/blog/", p.ID)
}

func (p Profile) String() string {
	return fmt.Sprintf("%s: %s", p.Username, p.BlogName)
}

// AuthorSummary is a profile as shown on author pages.
type AuthorSummary struct {
	Profile
	SubscriberCount int
	Subscribed      bool
}

// AuthorDirectory is the author list together with the viewer's own context.
type AuthorDirectory struct {
	Authors []AuthorSummary
	// Viewer is nil for anonymous requests.
	Viewer *Profile
}

// ProfileInput is the owner-editable part of a profile.
type ProfileInput struct {
	BlogName string `form:"blog_name" validate:"notblank,max=1024"`
}
