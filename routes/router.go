package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sohei-site/portfolio-api/analytics"
	"github.com/sohei-site/portfolio-api/config"
	"github.com/sohei-site/portfolio-api/controllers"
	"github.com/sohei-site/portfolio-api/middleware"
	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

// SetupRouter wires routes, middlewares, stores and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	visitStore := stores.NewGormVisitStore(db)
	contentStore := stores.NewGormContentStore(db)
	adminStore := stores.NewGormAdminStore(db)
	imageStore := stores.NewGormImageStore(db)

	aggregator := analytics.NewAggregator(visitStore, contentStore, analytics.Options{
		Timeout:       time.Duration(cfg.StatsTimeoutSec) * time.Second,
		RetryAttempts: cfg.StatsRetryAttempts,
	})

	analyticsController := controllers.NewAnalyticsController(visitStore, aggregator)
	authController := controllers.NewAuthController(adminStore)
	contentController := controllers.NewContentController(contentStore)
	imageController := controllers.NewImageController(imageStore)

	api := r.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	analyticsGroup := api.Group("/analytics")
	// The log endpoint is intentionally outside the rate limiter: every
	// page view must produce a row.
	analyticsGroup.POST("/log", analyticsController.LogVisit)
	analyticsGroup.GET("/stats", middleware.AuthRequired(), analyticsController.GetStats)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/setup", authController.Setup)
	authGroup.POST("/change-password", middleware.AuthRequired(), authController.ChangePassword)
	authGroup.GET("/verify", middleware.AuthRequired(), authController.Verify)

	contentGroup := api.Group("/content")
	contentGroup.GET("", contentController.GetAll)
	contentGroup.GET("/:page", contentController.GetPage)
	contentGroup.PUT("/:page", middleware.AuthRequired(), contentController.UpdatePage)
	contentGroup.POST("/import", middleware.AuthRequired(), contentController.Import)
	contentGroup.DELETE("", middleware.AuthRequired(), contentController.DeleteAll)

	imageGroup := api.Group("/images")
	imageGroup.GET("/:page", imageController.ListKeys)
	imageGroup.GET("/:page/:key", imageController.GetImage)
	imageGroup.PUT("/:page/:key", middleware.AuthRequired(), imageController.Upload)
	imageGroup.DELETE("/:page/:key", middleware.AuthRequired(), imageController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.FailCode(ctx, http.StatusNotFound, "route not found", "NOT_FOUND", false)
	})

	return r
}
