package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/udconnect/udconnect-api/internal/interface/http"
)

type SpaceModule struct {
	Handler *handlers.SpaceHandler
	Guards  Guards
}

func NewSpaceModule(h *handlers.SpaceHandler, g Guards) *SpaceModule {
	return &SpaceModule{Handler: h, Guards: g}
}

func (m *SpaceModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/space")
	g.GET("/", m.Handler.List)
	g.GET("/all/explore", m.Handler.Explore)
	g.GET("/:id", m.Handler.Get)
	g.GET("/:id/members", m.Handler.Members)
	g.GET("/:id/recent-posts", m.Handler.RecentPosts)

	auth := g.Group("", m.Guards.Auth)
	{
		auth.POST("/create", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/join", m.Handler.Join)
		auth.POST("/:id/leave", m.Handler.Leave)
	}
}
