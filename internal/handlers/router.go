package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/config"
	"github.com/SibartechCompany/eWash-Backend/internal/events"
	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
)

// Register mounts the full API surface on the router.
func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, producer *events.Producer) {
	r.GET("/health", func(c *gin.Context) {
		httpx.OKResponse(c, "eWash API is healthy", nil)
	})

	authMW := middleware.NewAuthMiddleware(db, cfg.JWTSecret)
	api := r.Group("/api/v1")

	RegisterAuthRoutes(api.Group("/auth"), db, cfg, authMW)

	protected := api.Group("")
	protected.Use(authMW.RequireAuth())

	RegisterOrganizationRoutes(protected.Group("/organizations"), db, authMW)
	RegisterBranchRoutes(protected.Group("/branches"), db)
	RegisterClientRoutes(protected.Group("/clients"), db)
	RegisterVehicleRoutes(protected.Group("/vehicles"), db)
	RegisterEmployeeRoutes(protected.Group("/employees"), db)
	RegisterServiceRoutes(protected.Group("/services"), db)
	RegisterOrderRoutes(protected.Group("/orders"), db, producer)
	RegisterUserRoutes(protected.Group("/users"), db)
	RegisterDashboardRoutes(protected.Group("/dashboard"), db)
}
