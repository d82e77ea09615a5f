package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/container"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register exposes expvar metrics; private networks skip the per-IP limit.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), middleware.PerMinute(120), middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
