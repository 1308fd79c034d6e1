package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"supportdesk/internal/infrastructure/auth"
	"supportdesk/internal/infrastructure/config"
	"supportdesk/internal/infrastructure/permission"
	"supportdesk/internal/interfaces/http/middleware"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/services/markdown"
)

// Container holds every dependency the HTTP layer needs. Fields are grouped
// by the section of NewContainer that creates them.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface

	// Infrastructure
	redis    *redis.Client
	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer
	renderer markdown.MarkdownService

	// Ticket module
	repos *repositories
	ucs   *ticketUseCases
	hdlrs *handlerSet

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires all components over an open database connection.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, JWT, Casbin, Markdown
	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	// Section 2: Tickets - Repositories, UseCases, Handlers
	c.initTickets()

	// Section 3: Middlewares
	c.initMiddlewares()

	return c, nil
}

// JWTService exposes the token issuer, used by the token command and tests.
func (c *Container) JWTService() *auth.JWTService {
	return c.jwtSvc
}
