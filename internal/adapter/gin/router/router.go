package router

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"article-api/api/swagger"
	"article-api/internal/adapter/gin/handler"
	"article-api/internal/adapter/gin/middleware"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one backing store
type HealthCheck func(ctx context.Context) error

// Dependencies groups everything the router wires into routes
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	ArticleHandler *handler.ArticleHandler
	Authenticator  middleware.Authenticator
	RateLimiter    *middleware.RateLimiter
	HealthChecks   map[string]HealthCheck
	ServiceName    string
	Logger         *zap.Logger
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.ErrorHandler(deps.Logger))

	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.NotFound())

	// Health check endpoint
	router.GET("/health", health(deps.ServiceName, deps.HealthChecks, deps.Logger))

	// API documentation
	swaggerUI := gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", swagger.Doc)
			return
		}
		swaggerUI(c)
	})

	api := router.Group("")
	api.Use(deps.RateLimiter.Middleware())
	{
		api.POST("/register", deps.AuthHandler.Register)
		api.POST("/login", deps.AuthHandler.Login)
		api.POST("/logout", middleware.OptionalAuth(deps.Authenticator), deps.AuthHandler.Logout)

		protected := api.Group("")
		protected.Use(middleware.Authenticate(deps.Authenticator))
		{
			protected.GET("/user", deps.AuthHandler.Me)

			articles := protected.Group("/articles")
			{
				articles.GET("", deps.ArticleHandler.ListArticles)
				articles.GET("/:id", deps.ArticleHandler.GetArticle)
				articles.POST("", deps.ArticleHandler.CreateArticle)
				articles.PUT("/:id", deps.ArticleHandler.UpdateArticle)
				articles.DELETE("/:id", deps.ArticleHandler.DeleteArticle)
			}
		}
	}

	return router
}

// health reports "healthy" with 200, or "unhealthy" with 503 when any probe fails
func health(service string, checks map[string]HealthCheck, log *zap.Logger) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		body := gin.H{"status": "healthy", "service": service}
		if len(names) == 0 {
			c.JSON(http.StatusOK, body)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				log.Warn("health check failed", zap.String("check", name), zap.Error(err))
				results[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "up"
		}

		if status != http.StatusOK {
			body["status"] = "unhealthy"
		}
		body["checks"] = results
		c.JSON(status, body)
	}
}
