package middleware

import (
	"aquasentry-srv/internal/model"

	"github.com/gin-gonic/gin"
)

const scopeKey = "auth.scope"

func setScope(c *gin.Context, s model.Scope) {
	c.Set(scopeKey, s)
}

// GetScope returns the authenticated caller scope set by Auth.
// The zero scope is returned on unauthenticated requests.
func GetScope(c *gin.Context) model.Scope {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}
	}
	s, ok := v.(model.Scope)
	if !ok {
		return model.Scope{}
	}
	return s
}
