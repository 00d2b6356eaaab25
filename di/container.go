package di

import (
	"context"
	"fmt"
	"log/slog"

	"blog/config"
	"blog/internal/adapter/handler"
	"blog/internal/domain"
	"blog/internal/infrastructure/mail"
	"blog/internal/infrastructure/password"
	"blog/internal/infrastructure/postgres"
	"blog/internal/infrastructure/session"
	"blog/internal/infrastructure/token"
	"blog/internal/usecase"
	"blog/job"
	"blog/utils/validator"
)

// Store is everything the usecases persist through.
type Store interface {
	domain.TxManager
	domain.UserRepository
	domain.ProfileRepository
	domain.SubscriptionRepository
	domain.PostRepository
	domain.ReadReceiptRepository
	domain.NotificationOutbox
}

// Ports are the infrastructure adapters the application is built on.
type Ports struct {
	Store    Store
	Sessions domain.SessionStore
	Tokens   domain.TokenCodec
	Hasher   domain.PasswordHasher
	Mail     domain.MailSender
	Checks   map[string]handler.ReadinessCheck
}

// ApplicationComponents holds the wired usecases, handlers and jobs.
type ApplicationComponents struct {
	ResolveSession *usecase.ResolveSession
	CreateUser     *usecase.CreateUser
	Handlers       handler.Handlers
	DispatchJob    job.Job
	PruneJob       job.Job
	Waker          *job.Waker
}

func NewApplicationComponents(p Ports, cfg *config.Config, logger *slog.Logger) *ApplicationComponents {
	v := validator.New()
	s := p.Store
	waker := job.NewWaker()

	resolveSession := usecase.NewResolveSession(s, p.Sessions, p.Tokens, logger)
	dispatch := usecase.NewDispatchNotifications(s, p.Mail, cfg.Outbox.BatchSize, logger)
	// A claim older than two job timeouts belongs to a worker that is gone.
	prune := usecase.NewPruneNotifications(s, cfg.Outbox.Retention, 2*cfg.Outbox.JobTimeout, logger)

	handlers := handler.Handlers{
		Posts: handler.NewPostHandler(
			usecase.NewListPublishedPosts(s, logger),
			usecase.NewViewPost(s, s, logger),
			usecase.NewGetOwnPost(s, s, logger),
			usecase.NewCreatePost(s, s, s, v, logger),
			usecase.NewUpdatePost(s, s, s, v, logger),
			usecase.NewDeletePost(s, s, s, logger),
			usecase.NewPublishPost(s, s, s, s, s, cfg.App.BaseURL, logger),
			waker,
			logger,
		),
		Authors: handler.NewAuthorHandler(
			usecase.NewListAuthors(s, s, logger),
			usecase.NewGetAuthor(s, s, logger),
			usecase.NewListAuthorPosts(s, logger),
			usecase.NewListFeed(s, logger),
			usecase.NewSubscribe(s, s, s, logger),
			usecase.NewUnsubscribe(s, s, s, logger),
			logger,
		),
		Profile: handler.NewProfileHandler(
			usecase.NewGetOrCreateProfile(s, logger),
			usecase.NewUpdateBlogName(s, s, v, logger),
			logger,
		),
		Auth: handler.NewAuthHandler(
			usecase.NewLogin(s, p.Hasher, p.Sessions, p.Tokens, cfg.Session.TTL, logger),
			usecase.NewLogout(p.Sessions, p.Tokens, logger),
			cfg.Session,
			logger,
		),
		Health: handler.NewHealthHandler(p.Checks),
	}

	return &ApplicationComponents{
		ResolveSession: resolveSession,
		CreateUser:     usecase.NewCreateUser(s, s, s, p.Hasher, v, logger),
		Handlers:       handlers,
		DispatchJob:    job.NotificationDispatchJob(dispatch, cfg.Outbox, waker),
		PruneJob:       job.NotificationPruneJob(prune, cfg.Outbox),
		Waker:          waker,
	}
}

// pgStore joins the repository with the transaction manager.
type pgStore struct {
	*postgres.Repository
	*postgres.TxManager
}

// NewPostgresStore backs Store with the connection pool of db.
func NewPostgresStore(db *postgres.DB, logger *slog.Logger) Store {
	pool := db.Pool()
	return pgStore{
		Repository: postgres.NewRepository(pool),
		TxManager:  postgres.NewTxManager(pool, logger),
	}
}

// Container owns the live connections behind the components.
type Container struct {
	*ApplicationComponents
	db *postgres.DB
	rs *session.RedisStore
}

// NewContainer connects to PostgreSQL and Redis and wires the application.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	db, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	redisClient, err := session.NewClient(cfg.Redis.URL)
	if err != nil {
		db.Close()
		return nil, err
	}
	sessions := session.NewRedisStore(redisClient)
	if err := sessions.Ping(ctx); err != nil {
		db.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	var sender domain.MailSender
	if cfg.Mail.Enabled {
		smtp, err := mail.NewSMTPSender(cfg.Mail)
		if err != nil {
			db.Close()
			_ = redisClient.Close()
			return nil, err
		}
		sender = smtp
	} else {
		sender = mail.NewLogSender(logger)
	}

	ports := Ports{
		Store:    NewPostgresStore(db, logger),
		Sessions: sessions,
		Tokens:   token.NewJWTCodec(cfg.App.SecretKey),
		Hasher:   password.NewBcryptHasher(0),
		Mail:     sender,
		Checks: map[string]handler.ReadinessCheck{
			"postgres": db.HealthCheck,
			"redis":    sessions.Ping,
		},
	}

	return &Container{
		ApplicationComponents: NewApplicationComponents(ports, cfg, logger),
		db:                    db,
		rs:                    sessions,
	}, nil
}

func (c *Container) Close() error {
	c.db.Close()
	return c.rs.Close()
}
