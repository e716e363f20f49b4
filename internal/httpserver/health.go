package httpserver

import (
	"aquasentry-srv/pkg/errors"
	"aquasentry-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the digest service and its stores are healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Failure 503 {object} map[string]interface{} "A dependency is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(503, "Redis connection failed", 503))
		return
	}
	if err := srv.db.PingContext(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(503, "Postgres connection failed", 503))
		return
	}

	response.OK(c, gin.H{
		"status":   "healthy",
		"service":  "aquasentry-srv",
		"version":  "1.0.0",
		"redis":    "connected",
		"postgres": "connected",
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Check if the digest service is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(503, "Redis connection not available", 503))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "aquasentry-srv",
		"version": "1.0.0",
		"redis":   "connected",
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the digest service is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "aquasentry-srv",
		"version": "1.0.0",
	})
}
