package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/udconnect/udconnect-api/pkg/response"
)

// Limit is a fixed-window request budget.
type Limit struct {
	Max    int
	Window time.Duration
}

// PerMinute is shorthand for a one-minute window.
func PerMinute(n int) Limit { return Limit{Max: n, Window: time.Minute} }

// KeyFunc names the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true for requests that skip the limiter.
type AllowFunc func(c *gin.Context) bool

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

// KeyByIPAndPath buckets per route template, so /space/:id counts as one path.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID falls back to the client IP for anonymous callers.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := UserID(c); uid != "" {
			return "rl:user:" + uid
		}
		return "rl:user:anon:ip:" + ipFromCtx(c)
	}
}

// INCR and PEXPIRE in one round trip; the TTL is set only when the window opens.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// RateLimit counts requests in Redis and answers 429 once the budget is spent.
// Without Redis, or when Redis fails, requests pass.
func RateLimit(rdb *redis.Client, limit Limit, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || limit.Max <= 0 || limit.Window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		res, err := incrExpireScript.Run(c.Request.Context(), rdb, []string{keyFn(c)}, limit.Window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		count, ttlMs := int(res[0]), res[1]
		resetSec := 0
		if ttlMs > 0 {
			resetSec = int((time.Duration(ttlMs)*time.Millisecond + time.Second - 1) / time.Second)
		}

		remaining := limit.Max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > limit.Max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "Demasiadas solicitudes, intenta más tarde", nil)
			return
		}
		c.Next()
	}
}
