package http

import (
	"log/slog"
	"main/internal/config"
	adminHandler "main/internal/delivery/http/admin_handler"
	authHandler "main/internal/delivery/http/auth_handler"
	catalogHandler "main/internal/delivery/http/catalog_handler"
	metrics "main/internal/metrics"

	"github.com/labstack/echo/v4"
	middleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const (
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
)

func MapRoutes(
	e *echo.Echo,
	authHandler *authHandler.AuthHandler,
	adminHandler *adminHandler.AdminHandler,
	catalogHandler *catalogHandler.CatalogHandler,
	sessions SessionResolver,
	logger *slog.Logger,
	rateLimiterConfig config.RateLimiterConfig,
	m *metrics.Metrics,
	registry *prometheus.Registry,
	client *redis.Client,
) {
	// Middlewares
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:   middleware.DefaultSkipper,
		LogURI:    true,
		LogMethod: true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {

			if v.Error != nil {
				logger.Error("HTTP request error",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"error", v.Error,
				)
				return nil
			}

			logger.Info("HTTP request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"error", v.Error,
			)

			return nil
		},
	},
	))
	e.Use(MetricsMiddleware(m))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Session lifecycle
	e.POST("/login", authHandler.Login, RateLimitMiddleware(client, &rateLimiterConfig))
	e.POST("/register", authHandler.Register, RateLimitMiddleware(client, &rateLimiterConfig))
	e.POST("/logout", authHandler.Logout)
	e.POST("/refresh", authHandler.Refresh)
	e.GET("/profile", authHandler.Profile, RequireRoles(sessions))
	e.PUT("/profile", authHandler.UpdateProfile, RequireRoles(sessions))

	// Public storefront reads, no session required
	e.GET("/products", catalogHandler.ListProducts)
	e.GET("/products/:id", catalogHandler.GetProduct)
	e.GET("/services", catalogHandler.ListServices)
	e.GET("/services/:id", catalogHandler.GetService)
	e.GET("/categories", catalogHandler.ListCategories)
	e.GET("/vehicle-types", catalogHandler.ListVehicleTypes)
	e.GET("/promotions", catalogHandler.ListPromotions)
	e.GET("/blogs", catalogHandler.ListBlogs)
	e.GET("/blogs/:id", catalogHandler.GetBlog)

	// Customer writes need a login but no particular role
	e.POST("/orders", catalogHandler.PlaceOrder, RequireRoles(sessions))
	e.POST("/orders/:id/products", catalogHandler.AddOrderProduct, RequireRoles(sessions))
	e.POST("/reservations", catalogHandler.MakeReservation, RequireRoles(sessions))

	// Privileged routes share one gate, parameterized per required-role set
	admin := e.Group("/admin", RequireRoles(sessions, RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/reservations", adminHandler.ListReservations)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.DELETE("/services/:id", adminHandler.DeleteService)
	admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
	admin.DELETE("/reservations/:id", adminHandler.DeleteReservation)
	admin.DELETE("/promotions/:id", adminHandler.DeletePromotion)
	admin.POST("/promotions", adminHandler.CreatePromotion)
	admin.GET("/users/:id/roles", adminHandler.GetUserRoles)
	admin.POST("/users/:id/roles", adminHandler.AddUserRole)
	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products", adminHandler.UpdateProduct)
	admin.POST("/services", adminHandler.CreateService)
	admin.PUT("/services", adminHandler.UpdateService)
	admin.POST("/pictures", adminHandler.AddPicture)

	// Blog moderation is open to moderators as well
	blogAdmin := e.Group("/moderation", RequireRoles(sessions, RoleAdmin, RoleModerator))
	blogAdmin.POST("/blogs", adminHandler.CreateBlog)
	blogAdmin.DELETE("/blogs/:id", adminHandler.DeleteBlog)

	logger.Info("HTTP routes mapped successfully")
}
