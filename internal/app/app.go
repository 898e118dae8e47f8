// Package app wires configuration, storage and services into one value shared
// by the API server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"eventteam/database"
	"eventteam/internal/clock"
	"eventteam/internal/config"
	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/repository"
	"eventteam/internal/http-api/router"
	"eventteam/internal/http-api/service"
	"eventteam/internal/middleware/auth"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  clock.Clock
	DB     *gorm.DB

	Sessions repository.SessionRepository
	Services router.Services

	redis *redis.Client
}

// New connects to the database (migrating it) and to the session backend.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	offset, err := cfg.Offset()
	if err != nil {
		return nil, err
	}
	clk := clock.NewCivil(offset)

	db, err := database.Connect(cfg, clk, logger)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger, Clock: clk, DB: db}

	switch cfg.SessionBackend {
	case "redis":
		a.redis, err = repository.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		a.Sessions = repository.NewSessionRedisRepository(a.redis)
		logger.Info("Using redis session store")
	default:
		a.Sessions = repository.NewSessionRepository(db)
	}

	store := repository.NewStore(db)
	a.Services = router.Services{
		Auth:    service.NewAuthService(store, a.Sessions, clk, cfg.SessionTTL, cfg.DefaultPassword, logger),
		Members: service.NewMemberService(store, clk),
		Points:  service.NewPointService(store, clk),
		Users: service.NewUserService(store, a.Sessions, clk, service.UserAdminConfig{
			SuperAdminUsername: cfg.SuperAdminUsername,
			DefaultPassword:    cfg.DefaultPassword,
		}, logger),
		Logs: service.NewLogService(store, clk),
	}
	return a, nil
}

// Bootstrap makes sure the super-admin account exists.
func (a *App) Bootstrap(ctx context.Context) error {
	user, created, err := a.Services.Users.EnsureSuperAdmin(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	if created {
		a.Logger.Warn("Super admin created with the default password, change it on first login", "username", user.Username)
	}
	return nil
}

// Handler builds the HTTP engine.
func (a *App) Handler() *gin.Engine {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return router.New(a.Services, router.Options{
		Cookies: &middleware.SessionCookies{
			Name:   a.Config.SessionCookieName,
			Secure: a.Config.SessionCookieSecure,
			Signer: auth.NewCookieSigner(a.Config.SessionSecret, a.Config.SessionTTL, a.Clock.Now),
		},
		LoginRateLimit: a.Config.LoginRateLimit,
		LoginRateBurst: a.Config.LoginRateBurst,
		StaticDir:      a.Config.StaticDir,
		Logger:         a.Logger,
	})
}

func (a *App) Close() error {
	var redisErr error
	if a.redis != nil {
		redisErr = a.redis.Close()
	}
	if err := database.Close(a.DB); err != nil {
		return err
	}
	return redisErr
}
