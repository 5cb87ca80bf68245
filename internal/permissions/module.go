package permissions

import (
	apphttp "umroh_travel_backend/internal/http"
	"umroh_travel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module exposes the caller's effective permissions to the back-office UI.
type Module struct {
	policy *Policy
}

func NewModule(policy *Policy) *Module {
	return &Module{policy: policy}
}

func (m *Module) Name() string { return "permissions" }

func (m *Module) Policy() *Policy { return m.policy }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/permissions/me", func(c *gin.Context) {
		id := httpkit.MustGetIdentity(c)
		if id == nil {
			return
		}
		httpkit.OK(c, gin.H{
			"roles":       id.Roles(),
			"permissions": m.policy.Effective(id.Roles()),
		})
	})
}
