package http

import (
	"gorm.io/gorm"

	"stockdesk/internal/infrastructure/config"
	"stockdesk/internal/shared/logger"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container
}

// NewRouter creates a router with all dependencies wired.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}
