package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const viewerKey = "viewerID"

// Viewer reads the resolved viewer identity from the X-Viewer-Id header.
// Authentication itself happens upstream; by the time a request reaches this
// service the gateway has already exchanged the session for a user id. A
// missing id on a route that needs one aborts with a body, never a bare
// status.
func Viewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID := c.GetHeader("X-Viewer-Id")
		if viewerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"data":       nil,
				"message":    "missing viewer identity",
			})
			return
		}
		c.Set(viewerKey, viewerID)
		c.Next()
	}
}

// ViewerID returns the viewer id set by the Viewer middleware, empty when
// the route is unauthenticated.
func ViewerID(c *gin.Context) string {
	return c.GetString(viewerKey)
}

// RateLimit applies a per-client token bucket keyed by client IP. Limiters
// live for the process lifetime.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rps, burst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"statusCode": http.StatusTooManyRequests,
				"data":       nil,
				"message":    "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
