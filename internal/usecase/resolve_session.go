package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// ResolveSession maps a session cookie to the logged-in user.
type ResolveSession struct {
	users    domain.UserRepository
	sessions domain.SessionStore
	tokens   domain.TokenCodec
	logger   *slog.Logger
}

func NewResolveSession(users domain.UserRepository, sessions domain.SessionStore, tokens domain.TokenCodec, logger *slog.Logger) *ResolveSession {
	return &ResolveSession{users: users, sessions: sessions, tokens: tokens, logger: logger}
}

func (uc *ResolveSession) Execute(ctx context.Context, token string) (*domain.Viewer, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	sid, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessions.GetSession(ctx, sid)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = uc.sessions.DeleteSession(ctx, sid)
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	if !user.IsActive {
		if err := uc.sessions.DeleteSession(ctx, sid); err != nil {
			uc.logger.WarnContext(ctx, "failed to drop session of inactive user", "user_id", user.ID, "error", err)
		}
		return nil, domain.ErrUnauthorized
	}

	return &domain.Viewer{User: *user, Session: *session}, nil
}
