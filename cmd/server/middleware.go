// Package main provides the department website backend entry point.
package main

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aimldept/deptbot-go/internal/logger"
	"github.com/aimldept/deptbot-go/internal/metrics"
	"github.com/aimldept/deptbot-go/internal/ratelimit"
)

// securityHeadersMiddleware adds security headers to all responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		entry := log.WithField("method", method).
			WithField("path", path).
			WithField("status", status).
			WithField("duration_ms", duration.Milliseconds()).
			WithField("ip", c.ClientIP())

		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Error("Request completed with errors")
		} else {
			switch {
			case status >= 500:
				entry.Error("Request failed")
			case status >= 400:
				entry.Warn("Request completed with client error")
			default:
				entry.Debug("Request completed")
			}
		}
	}
}

// globalRateLimitMiddleware applies the process-wide token bucket.
func globalRateLimitMiddleware(limiter *ratelimit.Limiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			if m != nil {
				m.RecordRateLimitDrop("global")
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}

// metricsAuthMiddleware enforces Basic Auth for /metrics. With an empty
// password the endpoint is open, which is fine on private networks.
func metricsAuthMiddleware(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			c.Next()
			return
		}

		user, pass, hasAuth := c.Request.BasicAuth()
		if !hasAuth {
			c.Header("WWW-Authenticate", `Basic realm="metrics"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
		if !userMatch || !passMatch {
			c.Header("WWW-Authenticate", `Basic realm="metrics"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
