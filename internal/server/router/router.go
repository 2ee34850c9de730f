package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/silotrack/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(siloHandler *handlers.SiloHandler, summaryHandler *handlers.SummaryHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
		api.GET("/silos", siloHandler.List)
		api.POST("/silos", siloHandler.Create)
		api.PATCH("/silos/:id", siloHandler.Rename)
		api.DELETE("/silos/:id", siloHandler.Delete)
		api.POST("/silos/:id/load", siloHandler.Load)
		api.POST("/silos/:id/unload", siloHandler.Unload)
		api.GET("/summary", summaryHandler.List)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
