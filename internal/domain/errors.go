package domain

import "errors"

var (
	// Not found errors
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrPostNotFound    = errors.New("post not found")

	// Authentication and authorization errors
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("action not allowed for this user")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSession     = errors.New("invalid session token")

	// Conflict and input errors
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSelfSubscription  = errors.New("cannot subscribe to own blog")

	// Infrastructure errors
	ErrStorage      = errors.New("storage error")
	ErrMailDelivery = errors.New("mail delivery failed")
)
