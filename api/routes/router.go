// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatboard/internal/seats"
	"seatboard/internal/shared/config"
	"seatboard/internal/shared/database"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	store  seats.Store
	editor *seats.Editor
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, store seats.Store, editor *seats.Editor) *Router {
	return &Router{
		config: cfg,
		db:     db,
		store:  store,
		editor: editor,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupSeatRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatboard",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatboard",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"backend":     r.config.Store.Backend,
			"timestamp":   time.Now(),
		})
	})
}

// setupSeatRoutes configures the seat grid, record and edit session routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	controller := seats.NewController(r.store, r.editor)
	seats.SetupSeatRoutes(rg, controller)
}
