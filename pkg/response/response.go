package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Payload is merged into the top level of the response body next to the envelope fields.
type Payload map[string]any

// Success writes {success:true, message, request_id, timestamp, ...payload}.
func Success(c *gin.Context, status int, message string, payload Payload) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{
		"success":    true,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().UTC(),
	}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes {success:false, message, request_id, timestamp, error?}.
func Error(c *gin.Context, status int, message string, err any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := gin.H{
		"success":    false,
		"message":    message,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().UTC(),
	}
	if err != nil {
		body["error"] = err
	}
	c.JSON(status, body)
}

// Abort is Error followed by c.Abort, for use inside middleware.
func Abort(c *gin.Context, status int, message string, err any) {
	Error(c, status, message, err)
	c.Abort()
}
