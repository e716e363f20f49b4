package middleware

import (
	"strings"

	"aquasentry-srv/internal/model"
	"aquasentry-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and stores the caller scope in the
// gin context for handlers.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.l.Warnf(c.Request.Context(), "Missing Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.l.Warnf(c.Request.Context(), "Invalid Authorization header format | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := m.jwtV.ValidateToken(tokenString)
		if err != nil {
			m.l.Warnf(c.Request.Context(), "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		setScope(c, model.Scope{
			UserID: claims.Sub,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		c.Next()
	}
}

// InternalKey guards machine-to-machine endpoints with a shared key.
func (m Middleware) InternalKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Internal-Key")
		if key == "" || key != m.internalKey {
			m.l.Warnf(c.Request.Context(), "Internal key rejected | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
