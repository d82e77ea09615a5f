package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/udconnect/udconnect-api/internal/interface/http"
)

type PostModule struct {
	Handler *handlers.PostHandler
	Guards  Guards
}

func NewPostModule(h *handlers.PostHandler, g Guards) *PostModule {
	return &PostModule{Handler: h, Guards: g}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/post")
	g.GET("/recent", m.Handler.Recent)
	g.GET("/space/:spaceId", m.Handler.BySpace)
	g.GET("/user/:userId", m.Handler.ByUser)
	g.GET("/:id", m.Handler.Get)

	auth := g.Group("", m.Guards.Auth)
	{
		auth.POST("/create", m.Handler.Create)
		auth.POST("/:id/like", m.Handler.ToggleLike)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
