package httpserver

import (
	"aquasentry-srv/internal/middleware"

	// Import this to execute the init function in docs.go which setups the Swagger docs.
	_ "aquasentry-srv/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	Api         = "/api/v1"
	InternalApi = "/internal/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.l, srv.discord))

	corsConfig := middleware.DefaultCORSConfig()
	srv.gin.Use(middleware.CORS(corsConfig))

	mw := middleware.New(srv.l, srv.jwtV, srv.internalKey)

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// One-click acknowledgement from digest emails (token is the capability)
	srv.gin.GET("/ack", srv.acknowledgeByLink)

	// Machine-to-machine ingestion
	internal := srv.gin.Group(InternalApi)
	internal.Use(mw.InternalKey())
	internal.POST("/readings", srv.processReading)

	// Operator API
	api := srv.gin.Group(Api)
	api.Use(mw.Auth())

	api.GET("/digests", srv.getDigests)
	api.GET("/digests/:id", srv.getDigestDetail)
	api.POST("/digests/acknowledge", srv.acknowledgeDigest)

	api.GET("/alerts", srv.getAlerts)

	api.GET("/thresholds", srv.getThresholds)
	api.PUT("/thresholds", srv.updateThresholds)

	return nil
}
