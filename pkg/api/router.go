package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/urmzd/huemcp/pkg/api/handlers"
	"github.com/urmzd/huemcp/pkg/lights"
	"github.com/urmzd/huemcp/pkg/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	service   *lights.Service
	validator *schema.Validator
}

// NewRouter creates a new API router
func NewRouter(service *lights.Service, validator *schema.Validator) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		service:   service,
		validator: validator,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	healthHandler := handlers.NewHealthHandler(r.service.Bridge())
	r.engine.GET("/health", healthHandler.Health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		groupsHandler := handlers.NewGroupsHandler(r.service, r.validator)
		groups := v1.Group("/groups")
		{
			groups.GET("", groupsHandler.ListGroups)
			groups.PUT("/color", groupsHandler.SetColors)
			groups.POST("/brightness/query", groupsHandler.GetBrightness)
			groups.PUT("/brightness", groupsHandler.SetBrightness)
			groups.PUT("/:id/name_sv", groupsHandler.SetLocalizedName)
		}
	}
}

// Handler returns the router as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}
