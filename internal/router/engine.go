package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/internal/container"
	"github.com/udconnect/udconnect-api/internal/interface/middleware"
)

// NewEngine assembles the Gin engine with the global middleware chain and all
// modules. The container must be populated first.
func NewEngine() *gin.Engine {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		gin.CustomRecovery(middleware.Recovery(logger)),
		middleware.RealIP(),
	)
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	r.Use(middleware.ErrorHandler(logger))

	reg := NewRegistry(r, cfg.APIPrefix)
	InitModules(reg)
	reg.RegisterAll()
	return r
}
