package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobtrail/internal/api/handlers"
	"jobtrail/internal/api/middleware"
	"jobtrail/internal/background"
	"jobtrail/internal/config"
	"jobtrail/internal/mailscan"
	"jobtrail/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, scanner *mailscan.Scanner, apps *storage.ApplicationStore, taskManager *background.Manager) {
	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		inbox := v1.Group("/inbox")
		{
			inbox.POST("/scan", handlers.ScanHandler(cfg, scanner, taskManager))
		}

		applications := v1.Group("/applications")
		{
			applications.GET("", handlers.ListApplicationsHandler(apps))
			applications.GET("/stats", handlers.ApplicationStatsHandler(apps))
		}

		tasks := v1.Group("/tasks")
		{
			tasks.GET("/:id", handlers.TaskStatusHandler(taskManager))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "jobtrail",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
