package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blog/internal/domain"
)

// CreateUser provisions an account together with its profile.
type CreateUser struct {
	tx        domain.TxManager
	users     domain.UserRepository
	profiles  domain.ProfileRepository
	hasher    domain.PasswordHasher
	validator domain.InputValidator
	logger    *slog.Logger
}

func NewCreateUser(tx domain.TxManager, users domain.UserRepository, profiles domain.ProfileRepository, hasher domain.PasswordHasher, validator domain.InputValidator, logger *slog.Logger) *CreateUser {
	return &CreateUser{tx: tx, users: users, profiles: profiles, hasher: hasher, validator: validator, logger: logger}
}

func (uc *CreateUser) Execute(ctx context.Context, in domain.NewUserInput) (*domain.User, *domain.Profile, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.BlogName = strings.TrimSpace(in.BlogName)
	if err := uc.validator.Validate(in); err != nil {
		return nil, nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     in.IsActive,
		CreatedAt:    time.Now().UTC(),
	}

	var profile *domain.Profile
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := uc.users.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		p, err := uc.profiles.GetOrCreateProfile(ctx, id)
		if err != nil {
			return err
		}
		if in.BlogName != "" {
			if err := uc.profiles.UpdateBlogName(ctx, p.ID, in.BlogName); err != nil {
				return err
			}
			p.BlogName = in.BlogName
		}
		profile = p
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create user %q: %w", in.Username, err)
	}

	uc.logger.InfoContext(ctx, "user created", "user_id", user.ID, "profile_id", profile.ID, "active", user.IsActive)
	return user, profile, nil
}
