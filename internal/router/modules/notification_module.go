package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/container"
	handlers "github.com/udconnect/udconnect-api/internal/interface/http"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
)

// NotificationModule serves the inbox and match endpoints; all of them need a session.
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Guards  Guards
}

func NewNotificationModule(h *handlers.NotificationHandler, g Guards) *NotificationModule {
	return &NotificationModule{Handler: h, Guards: g}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	requestLimiter := middleware.RateLimit(container.GetRedis(), middleware.PerMinute(30), middleware.KeyByUserID(), nil)

	g := rg.Group("/notification", m.Guards.Auth)
	{
		g.GET("/my-notifications", m.Handler.Mine)
		g.PUT("/:id/read", m.Handler.MarkRead)
		g.GET("/my-matches", m.Handler.Matches)

		g.POST("/match/request", requestLimiter, m.Handler.RequestMatch)
		g.POST("/match/accept/:id", m.Handler.Accept)
		g.POST("/match/reject/:id", m.Handler.Reject)
		g.GET("/match/status/:userId", m.Handler.Status)
		g.DELETE("/match/:userId", m.Handler.Unmatch)
	}
}
