package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"blog/internal/domain"
)

// Logout ends the session referenced by token. Missing or invalid tokens
// are ignored.
type Logout struct {
	sessions domain.SessionStore
	tokens   domain.TokenCodec
	logger   *slog.Logger
}

func NewLogout(sessions domain.SessionStore, tokens domain.TokenCodec, logger *slog.Logger) *Logout {
	return &Logout{sessions: sessions, tokens: tokens, logger: logger}
}

func (uc *Logout) Execute(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sid, err := uc.tokens.Parse(token)
	if err != nil {
		uc.logger.DebugContext(ctx, "logout with invalid token", "error", err)
		return nil
	}

	if err := uc.sessions.DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
