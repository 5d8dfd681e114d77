package middleware

import (
	"net/http"
	"sort"
	"time"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const unmatchedRoute = "unmatched"

// RequestLogger writes one "http_request" line per shopper request, keyed by
// the matched route so cart and checkout actions group cleanly.
//
// Levels follow what the response means for the storefront: 409 and 422 are
// ordinary shopper mistakes (empty cart, illegal step, bad form) and log at
// info, other 4xx at warn, 5xx at error. Health probes log at debug.
//
// Usage:
//
//	router.Use(middleware.RequestLogger(logger))
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.Int("bytes", c.Writer.Size()),
		}
		if route == unmatchedRoute {
			fields = append(fields, zap.String("path", c.Request.URL.Path))
		}
		if rid := c.GetString(logger.RequestIDKey); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if sid := c.GetString(SessionIDKey); sid != "" {
			fields = append(fields, zap.String("session_id", sid))
		}
		if last := c.Errors.Last(); last != nil {
			appErr := apperrors.From(last.Err)
			fields = append(fields, zap.String("error", appErr.Message))
			if len(appErr.Fields) > 0 {
				fields = append(fields, zap.Strings("invalid_fields", fieldNames(appErr.Fields)))
			}
		}

		switch {
		case route == "/health":
			log.Debug("http_request", fields...)
		case status >= http.StatusInternalServerError:
			log.Error("http_request", fields...)
		case status == http.StatusConflict || status == http.StatusUnprocessableEntity:
			log.Info("http_request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}

func fieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
