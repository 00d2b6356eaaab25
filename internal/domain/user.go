package domain

import "time"

// User is a login account. Accounts are provisioned through the CLI.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// NewUserInput carries the fields needed to provision an account.
type NewUserInput struct {
	Username string `json:"username" validate:"required,username,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	BlogName string `json:"blog_name" validate:"max=1024"`
	IsActive bool   `json:"is_active"`
}
