package permissions

import (
	"net/http"

	"umroh_travel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Require aborts with 403 unless the caller's roles grant perm.
func (p *Policy) Require(perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := httpkit.GetIdentity(c)
		if !id.IsAuthenticated() || !p.Allows(id.Roles(), perm) {
			httpkit.Error(c, http.StatusForbidden, "forbidden", gin.H{"permission": perm})
			c.Abort()
			return
		}
		c.Next()
	}
}
