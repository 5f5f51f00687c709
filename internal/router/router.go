package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/mesa-admin/resto-bo-api/internal/handler"
	"github.com/mesa-admin/resto-bo-api/internal/middleware"
	"github.com/mesa-admin/resto-bo-api/internal/models"
	"github.com/mesa-admin/resto-bo-api/internal/repository"
	"github.com/mesa-admin/resto-bo-api/internal/service"
	"github.com/mesa-admin/resto-bo-api/pkg/config"
	"github.com/mesa-admin/resto-bo-api/pkg/logger"
	corsmiddleware "github.com/mesa-admin/resto-bo-api/pkg/middleware/cors"
	reqidmiddleware "github.com/mesa-admin/resto-bo-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler mounted by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Restaurant *handler.RestaurantHandler
	Menu       *handler.MenuHandler
	Shifts     *handler.ShiftHandler
	Schedule   *handler.ScheduleHandler
	Sales      *handler.SalesHandler
	Dashboard  *handler.DashboardHandler
	Reports    *handler.ReportHandler
	Metrics    *handler.MetricsHandler
}

// New assembles the gin engine with middleware and all API routes.
func New(cfg *config.Config, logr *zap.Logger, authSvc *service.AuthService, metricsSvc *service.MetricsService, userRepo *repository.UserRepository, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Public routes. Downloads are guarded by the signed token itself.
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.GET("/reports/download/:token", h.Reports.Download)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.POST("/auth/change-password", h.Auth.ChangePassword)
	authed.GET("/auth/me", h.Auth.Me)

	users := authed.Group("/users")
	users.Use(middleware.RequireRoles(models.RoleOwner, models.RoleManager))
	{
		users.GET("", h.Users.List)
		users.POST("", middleware.Audit(userRepo, models.AuditActionUserInvite, "users"), h.Users.Invite)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Deactivate)
	}

	restaurants := authed.Group("/restaurants")
	{
		restaurants.GET("", middleware.RequireRoles(models.RoleOwner), h.Restaurant.List)
		restaurants.POST("", middleware.RequireRoles(models.RoleOwner), middleware.Audit(userRepo, models.AuditActionWrite, "restaurants"), h.Restaurant.Create)
		restaurants.GET("/:id", h.Restaurant.Get)
		restaurants.PUT("/:id", middleware.RequireRoles(models.RoleOwner), h.Restaurant.Update)
		restaurants.DELETE("/:id", middleware.RequireRoles(models.RoleOwner), h.Restaurant.Deactivate)
		restaurants.GET("/:id/hours", h.Restaurant.BusinessHours)
		restaurants.PUT("/:id/hours", middleware.RequireRoles(models.RoleOwner, models.RoleManager), middleware.Audit(userRepo, models.AuditActionWrite, "business_hours"), h.Restaurant.SetBusinessHours)
	}

	menu := authed.Group("/menu")
	{
		menu.GET("", h.Menu.List)
		menu.GET("/:id", h.Menu.Get)
		menu.POST("", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Menu.Create)
		menu.PUT("/:id", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Menu.Update)
		menu.DELETE("/:id", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Menu.Delete)
	}

	shifts := authed.Group("/shifts")
	{
		shifts.GET("", h.Shifts.List)
		shifts.GET("/:id", h.Shifts.Get)
		shifts.POST("", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Shifts.Create)
		shifts.PUT("/:id", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Shifts.Update)
		shifts.DELETE("/:id", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Shifts.Delete)
	}

	schedule := authed.Group("/schedule")
	{
		schedule.POST("/validate", h.Schedule.Validate)
		schedule.GET("/week", h.Schedule.WeekReport)
	}

	sales := authed.Group("/sales")
	{
		sales.POST("", h.Sales.Record)
		sales.GET("", h.Sales.List)
		sales.GET("/summary/daily", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Sales.DailySummary)
		sales.GET("/summary/top-items", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Sales.TopItems)
		sales.GET("/:id", h.Sales.Get)
	}

	authed.GET("/dashboard", middleware.RequireRoles(models.RoleOwner, models.RoleManager), h.Dashboard.Overview)

	reports := authed.Group("/reports")
	reports.Use(middleware.RequireRoles(models.RoleOwner, models.RoleManager))
	{
		reports.POST("", h.Reports.Create)
		reports.GET("", h.Reports.List)
		reports.GET("/:id", h.Reports.Status)
	}

	authed.GET("/system/metrics", middleware.RequireRoles(models.RoleOwner), h.Metrics.Snapshot)

	return r
}
