// Package restapi wires the HTTP surface: portfolio lookups, the XLSX
// export, health and operational endpoints.
package restapi

import (
	"time"

	"yield_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes attaches all portfolio endpoints to the router.
func RegisterRoutes(router *gin.Engine, portfolioSvc service.PortfolioService, logger *zap.Logger) {
	h := newPortfolioHandlers(portfolioSvc, logger)

	router.GET("/health", h.health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/portfolio/:address", h.getPortfolio)
		v1.GET("/portfolio/:address/export", h.exportPortfolio)
		v1.GET("/token-balances/:address", h.getTokenBalances)
	}
}

// ZapLoggerMiddleware logs every request with latency and status through the
// shared zap logger.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()))
	}
}
