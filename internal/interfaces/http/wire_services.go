package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stockdesk/internal/application/user/usecases"
	"stockdesk/internal/infrastructure/auth"
	"stockdesk/internal/infrastructure/config"
	permissionInfra "stockdesk/internal/infrastructure/permission"
	"stockdesk/internal/infrastructure/ratelimit"
	"stockdesk/internal/infrastructure/seed"
	"stockdesk/internal/infrastructure/storage"
	"stockdesk/internal/shared/db"
	"stockdesk/internal/shared/goroutine"
	"stockdesk/internal/shared/logger"
)

const rateLimitKeyPrefix = "stockdesk:ratelimit"

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.txManager = db.NewTransactionManager(c.db)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	c.jwtSvc = auth.NewJWTService(cfg.Auth.SecretKey, cfg.Auth.SessionTTL())

	uploads, err := storage.NewLocalStorage(cfg.Storage.UploadPath(), cfg.Server.MaxUploadBytes())
	if err != nil {
		return err
	}
	c.uploads = uploads

	enforcer, err := permissionInfra.NewEnforcer(c.db, log.Named("permission"))
	if err != nil {
		return err
	}
	c.enforcer = enforcer

	c.redis = initRedis(cfg, log)
	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis, rateLimitKeyPrefix)
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter()
	}

	return nil
}

// initRedis connects when enabled. An unreachable server falls back to the in-memory limiter.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("redis disabled, using in-memory login rate limiter")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to redis, using in-memory login rate limiter", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = client.Close()
		return nil
	}

	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
	return client
}

func (c *Container) seedUsers(ctx context.Context) error {
	users, err := seed.Load(c.cfg.Seed.UsersFile)
	if err != nil {
		return err
	}

	cmd := usecases.SeedUsersCommand{Users: make([]usecases.SeedUser, 0, len(users))}
	for _, u := range users {
		cmd.Users = append(cmd.Users, usecases.SeedUser{Username: u.Username, Password: u.Password, Role: u.Role})
	}

	created, err := c.ucs.seedUsers.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if created > 0 {
		c.log.Infow("seeded initial users", "count", created)
	}
	return nil
}

func (c *Container) startSweeper(ctx context.Context, interval time.Duration) <-chan struct{} {
	return goroutine.Every(ctx, c.log, "session-sweeper", interval, func(ctx context.Context) {
		if _, err := c.ucs.cleanupSessions.Execute(ctx); err != nil {
			c.log.Warnw("session sweep failed", "error", err)
		}
	})
}
