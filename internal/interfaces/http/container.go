package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stockdesk/internal/domain/permission"
	"stockdesk/internal/infrastructure/auth"
	"stockdesk/internal/infrastructure/config"
	permissionInfra "stockdesk/internal/infrastructure/permission"
	"stockdesk/internal/infrastructure/ratelimit"
	"stockdesk/internal/infrastructure/storage"
	"stockdesk/internal/interfaces/http/handlers/common"
	"stockdesk/internal/interfaces/http/middleware"
	"stockdesk/internal/shared/db"
	"stockdesk/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases, handlers
// and background jobs, wired together once at startup.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginLimiter         *middleware.LoginRateLimiter

	// Infrastructure services
	txManager *db.TransactionManager
	hasher    *auth.BcryptPasswordHasher
	jwtSvc    *auth.JWTService
	enforcer  *permissionInfra.Enforcer
	limiter   ratelimit.RateLimiter
	uploads   *storage.LocalStorage
	view      *common.View

	// Background jobs
	sweepCancel context.CancelFunc
	sweepDone   <-chan struct{}
}

// NewContainer wires every component on top of an open, migrated database.
func NewContainer(gormDB *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gormDB,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, storage, auth, policy
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Repositories and use cases
	c.repos = newRepositories(gormDB)
	c.ucs = c.newUseCases()

	// Section 3: Handlers, middlewares and page templates
	if err := c.initHandlers(); err != nil {
		return nil, err
	}

	return c, nil
}

// Bootstrap seeds the initial accounts into an empty store and stores the role policy.
func (c *Container) Bootstrap(ctx context.Context) error {
	if c.cfg.Seed.Enabled {
		if err := c.seedUsers(ctx); err != nil {
			return err
		}
	}

	if err := c.enforcer.Sync(permission.Matrix()); err != nil {
		return fmt.Errorf("failed to sync role policy: %w", err)
	}
	c.log.Infow("role policy synced", "roles", len(permission.Matrix()))
	return nil
}

// StartSessionSweeper removes expired sessions every interval until Shutdown.
func (c *Container) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	c.sweepCancel = cancel
	c.sweepDone = c.startSweeper(ctx, interval)
}

// Shutdown stops background jobs and closes the Redis client.
func (c *Container) Shutdown() {
	if c.sweepCancel != nil {
		c.sweepCancel()
		<-c.sweepDone
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
