package httpserver

import (
	"aquasentry-srv/internal/ingest"
	pkgErrors "aquasentry-srv/pkg/errors"
	"aquasentry-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var processReadingErrMap = response.ErrorMapping{
	ingest.ErrInvalidReading: pkgErrors.NewBadRequestHTTPError("invalid sensor reading"),
}

// processReading handles pushed sensor readings
// @Summary Ingest a sensor reading
// @Description Run the alert pipeline for one pushed sensor reading
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param X-Internal-Key header string true "Shared internal key"
// @Param reading body processReadingReq true "Sensor reading"
// @Success 200 {object} response.Resp{data=processReadingResp}
// @Failure 400 {object} response.Resp "Invalid reading"
// @Failure 401 {object} response.Resp "Internal key rejected"
// @Router /internal/api/v1/readings [post]
func (srv *HTTPServer) processReading(c *gin.Context) {
	ctx := c.Request.Context()

	var req processReadingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.processReading.ShouldBindJSON: %v", err)
		response.HttpError(c, pkgErrors.NewBadRequestHTTPError("invalid request body"))
		return
	}

	out, err := srv.ingestUC.ProcessReading(ctx, ingest.ProcessInput{Reading: req.toReading()})
	if err != nil {
		response.ErrorWithMap(c, err, processReadingErrMap)
		return
	}

	response.OK(c, processReadingResp{
		AlertsCreated: len(out.Alerts),
		Alerts:        out.Alerts,
	})
}
