package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxTitleLength bounds Post.Title.
const MaxTitleLength = 256

// Post is a single article. A nil PublishedAt means the post is a draft.
type Post struct {
	ID          int64
	AuthorID    int64
	Title       string
	Content     string
	CreatedAt   time.Time
	PublishedAt *time.Time

	// Author is populated by read queries.
	Author Profile
}

func (p Post) URL() string {
	return fmt.Sprintf("/post/%d/", p.ID)
}

func (p Post) String() string {
	return fmt.Sprintf("%s:%s", p.Title, p.Author.String())
}

func (p Post) IsPublished() bool {
	return p.PublishedAt != nil
}

func (p Post) IsAuthoredBy(profileID int64) bool {
	return p.AuthorID == profileID
}

// Publish moves a draft into the published state. It reports false when
// the post was already published, in which case nothing changes.
func (p *Post) Publish(at time.Time) bool {
	if p.PublishedAt != nil {
		return false
	}
	t := at.UTC()
	p.PublishedAt = &t
	return true
}

// PostInput is the editable part of a post.
type PostInput struct {
	Title   string `form:"title" validate:"required,max=256"`
	Content string `form:"content" validate:"notblank"`
}

// Normalize trims surrounding whitespace from the title.
func (in PostInput) Normalize() PostInput {
	in.Title = strings.TrimSpace(in.Title)
	return in
}

// FeedEntry is a post in a personalized feed together with the viewer's read state.
type FeedEntry struct {
	Post
	Read bool
}
