package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"supportdesk/internal/infrastructure/config"
	"supportdesk/internal/interfaces/http/middleware"
	"supportdesk/internal/interfaces/http/routes"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter builds the dependency container. Call SetupRoutes before serving.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/healthz", r.healthCheck)

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:        r.hdlrs.ticketHandler,
		AdminTicketHandler:   r.hdlrs.adminTicketHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimiter:          r.rateLimiter,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown releases connections held by the router. The database is owned by the caller.
func (r *Router) Shutdown() {
	if err := closeRedis(r.redis); err != nil {
		r.log.Errorw("failed to close redis on shutdown", "error", err)
	}
}

func (r *Router) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		r.log.Warnw("health check failed", "error", err)
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
}
