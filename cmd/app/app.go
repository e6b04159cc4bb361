package app

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"zurnaWorkshop/internal/config"
	"zurnaWorkshop/internal/database"
	"zurnaWorkshop/internal/functions"
	"zurnaWorkshop/internal/gateway"
	"zurnaWorkshop/internal/mailer"
	"zurnaWorkshop/internal/ratelimit"
	"zurnaWorkshop/internal/repository"
	"zurnaWorkshop/internal/service"
	"zurnaWorkshop/internal/session"
	"zurnaWorkshop/internal/storage"
)

// Deps is everything main needs to serve requests. Close releases the
// database and redis connections.
type Deps struct {
	DB       *database.DB
	Client   *gateway.Client
	Services *service.Service
	Limiter  ratelimit.Limiter
	Validate *validator.Validate
	Close    func()
}

func App(cfg *config.Config) *Deps {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		zap.S().Fatalf("failed to connect to database: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		zap.S().Fatalf("failed to initialize MinIO: %v", err)
	}

	// connection Redis, optional
	limiter, redisClient, err := ratelimit.New(ctx, cfg.Redis)
	if err != nil {
		zap.S().Warnf("rate limiting disabled: %v", err)
		limiter = ratelimit.Noop{}
	}

	sender := mailer.NewSender(cfg.SMTP)

	relay, err := mailer.NewRelay(cfg.Relay, sender)
	if err != nil {
		zap.S().Fatalf("failed to configure email relay: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	auth := gateway.NewAuthProvider(repo.User, sender, cfg.Auth)
	sessions := session.NewStore(cfg.Auth.SessionSecret, cfg.Auth.SessionSecure)
	client := gateway.NewClient(auth, repo, minioClient, sessions)

	validate := validator.New()
	function := functions.NewClient(cfg.ContactFunctionURL, nil)

	services := service.NewService(client, relay, function, cfg, validate)

	if cfg.Auth.AdminEmail != "" {
		if err := service.GrantAdmin(ctx, repo.User, repo.Role, cfg.Auth.AdminEmail); err != nil {
			zap.S().Warnf("admin role not granted: %v", err)
		}
	}

	return &Deps{
		DB:       db,
		Client:   client,
		Services: services,
		Limiter:  limiter,
		Validate: validate,
		Close: func() {
			if err := db.CloseDB(); err != nil {
				zap.S().Warnf("failed to close database: %v", err)
			}
			if redisClient != nil {
				redisClient.Close()
			}
		},
	}
}
