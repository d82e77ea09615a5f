package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client address as real_ip, preferring CF-Connecting-IP, then
// the left-most X-Forwarded-For entry, then Gin's ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); ip != nil {
		return ip.String()
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
