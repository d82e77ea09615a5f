package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/udconnect/udconnect-api/internal/interface/http"
)

type CommentModule struct {
	Handler *handlers.CommentHandler
	Guards  Guards
}

func NewCommentModule(h *handlers.CommentHandler, g Guards) *CommentModule {
	return &CommentModule{Handler: h, Guards: g}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/comments")
	g.GET("/post/:postId", m.Handler.ByPost)

	auth := g.Group("", m.Guards.Auth)
	{
		auth.POST("/create", m.Handler.Create)
		auth.POST("/:id/like", m.Handler.ToggleLike)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
