package httpserver

import (
	"aquasentry-srv/internal/alert"
	"aquasentry-srv/pkg/paginator"
	"aquasentry-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// getAlerts lists alert history
// @Summary List alerts
// @Description Page through the alert event history, newest first
// @Tags Alerts
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param device_id query string false "Filter by device"
// @Param parameter query string false "Filter by parameter"
// @Param severity query string false "Filter by severity"
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/alerts [get]
func (srv *HTTPServer) getAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	var pagQuery paginator.PaginateQuery
	if err := c.ShouldBindQuery(&pagQuery); err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.getAlerts.ShouldBindQuery: %v", err)
	}

	out, err := srv.alertUC.Get(ctx, alert.GetInput{
		Filter: alert.GetFilter{
			DeviceID:  c.Query("device_id"),
			Parameter: c.Query("parameter"),
			Severity:  c.Query("severity"),
		},
		PagQuery: pagQuery,
	})
	if err != nil {
		response.Error(c, err, srv.discord)
		return
	}

	response.OK(c, gin.H{
		"alerts":    out.Alerts,
		"paginator": out.Paginator,
	})
}
