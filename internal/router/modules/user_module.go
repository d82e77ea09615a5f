package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/container"
	handlers "github.com/udconnect/udconnect-api/internal/interface/http"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
)

// UserModule serves /user: account lifecycle, profiles and search.
type UserModule struct {
	Handler *handlers.UserHandler
	Guards  Guards
}

func NewUserModule(h *handlers.UserHandler, g Guards) *UserModule {
	return &UserModule{Handler: h, Guards: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	credentialsLimiter := middleware.RateLimit(rdb, middleware.PerMinute(10), middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/user")
	g.POST("/register", credentialsLimiter, m.Handler.Register)
	g.POST("/login", credentialsLimiter, m.Handler.Login)
	g.POST("/logout", m.Guards.Optional, m.Handler.Logout)
	g.GET("/all", m.Guards.Optional, m.Handler.All)

	auth := g.Group("", m.Guards.Auth, middleware.RateLimit(rdb, middleware.PerMinute(120), middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.PUT("/avatar", m.Handler.UpdateAvatar)
		auth.GET("/search", m.Handler.Search)
	}

	g.GET("/:id", m.Handler.Get)
}
