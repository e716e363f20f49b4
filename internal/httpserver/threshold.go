package httpserver

import (
	"aquasentry-srv/internal/middleware"
	"aquasentry-srv/internal/model"
	"aquasentry-srv/internal/threshold"
	pkgErrors "aquasentry-srv/pkg/errors"
	"aquasentry-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var thresholdErrMap = response.ErrorMapping{
	threshold.ErrInvalidConfig:    pkgErrors.NewBadRequestHTTPError("invalid threshold configuration"),
	threshold.ErrPermissionDenied: pkgErrors.NewForbiddenHTTPError("only admins may update thresholds"),
}

// getThresholds returns the active threshold configuration
// @Summary Get thresholds
// @Description Return the active evaluation configuration
// @Tags Thresholds
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Resp{data=model.ThresholdConfig}
// @Failure 401 {object} response.Resp
// @Router /api/v1/thresholds [get]
func (srv *HTTPServer) getThresholds(c *gin.Context) {
	response.OK(c, srv.thresholdUC.Current(c.Request.Context()))
}

// updateThresholds replaces the threshold configuration
// @Summary Update thresholds
// @Description Replace the active evaluation configuration (admin only)
// @Tags Thresholds
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body model.ThresholdConfig true "New configuration"
// @Success 200 {object} response.Resp{data=model.ThresholdConfig}
// @Failure 400 {object} response.Resp "Invalid configuration"
// @Failure 403 {object} response.Resp "Not an admin"
// @Router /api/v1/thresholds [put]
func (srv *HTTPServer) updateThresholds(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.ThresholdConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.updateThresholds.ShouldBindJSON: %v", err)
		response.HttpError(c, pkgErrors.NewBadRequestHTTPError("invalid request body"))
		return
	}

	cfg, err := srv.thresholdUC.Update(ctx, threshold.UpdateInput{
		Scope:  middleware.GetScope(c),
		Config: req,
	})
	if err != nil {
		response.ErrorWithMap(c, err, thresholdErrMap)
		return
	}

	response.OK(c, cfg)
}
