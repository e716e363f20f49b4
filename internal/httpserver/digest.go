package httpserver

import (
	"net/http"

	"aquasentry-srv/internal/digest"
	"aquasentry-srv/internal/middleware"
	pkgErrors "aquasentry-srv/pkg/errors"
	"aquasentry-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var digestErrMap = response.ErrorMapping{
	digest.ErrNotFound:         pkgErrors.NewNotFoundHTTPError("digest not found"),
	digest.ErrTokenMalformed:   pkgErrors.NewBadRequestHTTPError("malformed acknowledgement token"),
	digest.ErrPermissionDenied: pkgErrors.NewForbiddenHTTPError("digest does not belong to you"),
}

// getDigests lists the caller's digests
// @Summary List digests
// @Description List the digests belonging to the authenticated recipient
// @Tags Digests
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Resp{data=[]digestResp}
// @Failure 401 {object} response.Resp
// @Router /api/v1/digests [get]
func (srv *HTTPServer) getDigests(c *gin.Context) {
	ctx := c.Request.Context()

	recs, err := srv.digestUC.Get(ctx, digest.GetInput{Scope: middleware.GetScope(c)})
	if err != nil {
		response.ErrorWithMap(c, err, digestErrMap)
		return
	}

	response.OK(c, toDigestResps(recs))
}

// getDigestDetail fetches one digest
// @Summary Get digest detail
// @Description Fetch one digest; recipients may only read their own
// @Tags Digests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Digest ID"
// @Success 200 {object} response.Resp{data=digestResp}
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/digests/{id} [get]
func (srv *HTTPServer) getDigestDetail(c *gin.Context) {
	ctx := c.Request.Context()

	rec, err := srv.digestUC.Detail(ctx, digest.DetailInput{
		Scope: middleware.GetScope(c),
		ID:    c.Param("id"),
	})
	if err != nil {
		response.ErrorWithMap(c, err, digestErrMap)
		return
	}

	response.OK(c, toDigestResp(rec))
}

// acknowledgeDigest acknowledges a digest through the API
// @Summary Acknowledge a digest
// @Description Mark a digest as handled using its acknowledgement token
// @Tags Digests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body acknowledgeReq true "Acknowledgement token"
// @Success 200 {object} response.Resp{data=digestResp}
// @Failure 400 {object} response.Resp "Malformed token"
// @Failure 404 {object} response.Resp "Unknown token"
// @Router /api/v1/digests/acknowledge [post]
func (srv *HTTPServer) acknowledgeDigest(c *gin.Context) {
	ctx := c.Request.Context()

	var req acknowledgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.acknowledgeDigest.ShouldBindJSON: %v", err)
		response.HttpError(c, pkgErrors.NewBadRequestHTTPError("invalid request body"))
		return
	}

	rec, err := srv.digestUC.Acknowledge(ctx, digest.AcknowledgeInput{
		DigestID: req.DigestID,
		Token:    req.Token,
		Scope:    middleware.GetScope(c),
	})
	if err != nil {
		response.ErrorWithMap(c, err, digestErrMap)
		return
	}

	response.OK(c, toDigestResp(rec))
}

// acknowledgeByLink serves the one-click acknowledgement link embedded
// in digest emails. The token alone is the capability; the response is
// a minimal HTML page rather than the JSON envelope.
// @Summary Acknowledge a digest via email link
// @Description One-click acknowledgement from a digest email
// @Tags Digests
// @Produce html
// @Param digest_id query string false "Digest ID"
// @Param token query string true "Acknowledgement token"
// @Success 200 {string} string "Confirmation page"
// @Failure 400 {string} string "Malformed token"
// @Failure 403 {string} string "Token does not match the digest"
// @Failure 404 {string} string "Unknown token"
// @Router /ack [get]
func (srv *HTTPServer) acknowledgeByLink(c *gin.Context) {
	ctx := c.Request.Context()

	_, err := srv.digestUC.Acknowledge(ctx, digest.AcknowledgeInput{
		DigestID: c.Query("digest_id"),
		Token:    c.Query("token"),
	})
	switch err {
	case nil:
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte("<html><body><h2>Digest acknowledged</h2><p>You will receive no further reminders for these alerts.</p></body></html>"))
	case digest.ErrTokenMalformed:
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte("<html><body><h2>Invalid link</h2></body></html>"))
	case digest.ErrPermissionDenied:
		c.Data(http.StatusForbidden, "text/html; charset=utf-8",
			[]byte("<html><body><h2>This link does not match the digest</h2></body></html>"))
	case digest.ErrNotFound:
		c.Data(http.StatusNotFound, "text/html; charset=utf-8",
			[]byte("<html><body><h2>Unknown digest</h2></body></html>"))
	default:
		srv.l.Errorf(ctx, "internal.httpserver.acknowledgeByLink.Acknowledge: %v", err)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
			[]byte("<html><body><h2>Something went wrong</h2></body></html>"))
	}
}
