package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"article-api/cmd/api/di"
	ginrouter "article-api/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(c *di.Container, addr string, l *zap.Logger) *http.Server {
	if c.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(ginrouter.Dependencies{
		AuthHandler:    c.AuthHandler,
		ArticleHandler: c.ArticleHandler,
		Authenticator:  c.AuthUC,
		RateLimiter:    c.RateLimiter,
		HealthChecks:   c.HealthChecks(),
		ServiceName:    c.Config.Logger.ServiceName,
		Logger:         l,
	})

	l.Info("Gin REST API configured", zap.String("address", addr))
	l.Info("Swagger UI available at", zap.String("url", "http://localhost"+addr+"/swagger/index.html"))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
