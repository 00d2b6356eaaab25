package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"blog/internal/domain"
	"blog/metrics"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	User    *domain.User
	Session *domain.Session
	Token   string
}

// Login checks credentials and opens a session. Unknown users, wrong
// passwords and inactive accounts all yield domain.ErrInvalidCredentials.
type Login struct {
	users    domain.UserRepository
	hasher   domain.PasswordHasher
	sessions domain.SessionStore
	tokens   domain.TokenCodec
	ttl      time.Duration
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewLogin(users domain.UserRepository, hasher domain.PasswordHasher, sessions domain.SessionStore, tokens domain.TokenCodec, ttl time.Duration, logger *slog.Logger) *Login {
	return &Login{users: users, hasher: hasher, sessions: sessions, tokens: tokens, ttl: ttl, logger: logger}
}

func (uc *Login) Execute(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.RecordLogin("failure")
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.compareDummy(password)
			metrics.RecordLogin("failure")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		metrics.RecordLogin("failure")
		uc.logger.InfoContext(ctx, "login rejected", "user_id", user.ID, "reason", "password")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.RecordLogin("inactive")
		uc.logger.InfoContext(ctx, "login rejected", "user_id", user.ID, "reason", "inactive")
		return nil, domain.ErrInvalidCredentials
	}

	session, err := uc.sessions.CreateSession(ctx, user.ID, uc.ttl)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := uc.tokens.Issue(*session)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	metrics.RecordLogin("success")
	uc.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{User: user, Session: session, Token: token}, nil
}

// compareDummy spends one hash comparison on an unknown username so the
// response time matches a wrong password for a known one.
func (uc *Login) compareDummy(password string) {
	uc.dummyOnce.Do(func() {
		hash, err := uc.hasher.Hash("unknown-user-placeholder")
		if err != nil {
			uc.logger.Warn("failed to prepare placeholder password hash", "error", err)
			return
		}
		uc.dummyHash = hash
	})
	if uc.dummyHash != "" {
		_ = uc.hasher.Compare(uc.dummyHash, password)
	}
}
