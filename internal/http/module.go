package http

import (
	"github.com/gin-gonic/gin"
)

// Module is a bounded context that mounts its own routes.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the shared groups and middleware modules mount on.
type RouterContext struct {
	// Engine is the root engine.
	Engine *gin.Engine
	// V1 is /api/v1 without authentication.
	V1 *gin.RouterGroup
	// Protected is /api/v1 behind AuthRequired.
	Protected *gin.RouterGroup
	// Staff is /api/v1 behind AuthRequired and a back-office role.
	Staff *gin.RouterGroup
	// AuthMiddleware is exposed for modules that build their own groups.
	AuthMiddleware gin.HandlerFunc
}
