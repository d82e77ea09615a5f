package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/udconnect/udconnect-api/pkg/apperror"
	"github.com/udconnect/udconnect-api/pkg/response"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Internal causes are logged and never reach the client.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ae := apperror.As(c.Errors.Last().Err)
		if ae.Kind == apperror.KindInternal && logger != nil {
			logger.WithError(ae.Err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("request failed")
		}
		response.Error(c, ae.Status(), ae.Message, ae.Details)
	}
}

// Recovery is a gin.RecoveryFunc that answers panics with the standard 500 envelope.
func Recovery(logger *logrus.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, rec any) {
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.Request.URL.Path,
				"panic":      rec,
			}).Error("panic recovered")
		}
		response.Abort(c, http.StatusInternalServerError, "Error interno del servidor", nil)
	}
}
