package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/apperrors"
	"github.com/ngmaloney/tidewatch/internal/config"
	"github.com/ngmaloney/tidewatch/internal/metrics"
	"github.com/ngmaloney/tidewatch/internal/models"
)

const (
	// RequestIDKey is the key used to store the request ID in the gin context
	RequestIDKey = "request_id"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Keep an ID set by a proxy in front of us.
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// LoggerMiddleware writes one structured line per request.
func LoggerMiddleware(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Errorw("Request failed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warnw("Request rejected", fields...)
		default:
			log.Debugw("Request served", fields...)
		}
	}
}

// MetricsMiddleware records request counts and latency by route pattern.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(route, c.Writer.Status(), time.Since(start))
	}
}

// ErrorHandler turns the last error attached to the context into the
// {status: "error", message} envelope.
func ErrorHandler(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appErr, ok := apperrors.As(err); ok {
			status := appErr.GetHTTPStatus()
			log.Warnw("Request error",
				"path", c.Request.URL.Path,
				"error_type", string(appErr.Type),
				"error", appErr.Error(),
				"request_id", c.GetString(RequestIDKey))

			body := gin.H{
				"status":  models.StatusError,
				"message": appErr.Message,
			}
			// Validation details help the caller fix the request.
			if appErr.Detail != "" && appErr.Type == apperrors.ValidationError {
				body["detail"] = appErr.Detail
			}
			c.JSON(status, body)
			return
		}

		log.Errorw("Unexpected server error",
			"path", c.Request.URL.Path,
			"error", err,
			"request_id", c.GetString(RequestIDKey))

		body := gin.H{
			"status":  models.StatusError,
			"message": "Internal Server Error",
		}
		if gin.IsDebugging() {
			body["detail"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// CORSMiddleware allows the configured browser origins.
func CORSMiddleware(cfg config.ServerConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 || containsOrigin(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsConfig)
}

func containsOrigin(origins []string, origin string) bool {
	for _, o := range origins {
		if o == origin {
			return true
		}
	}
	return false
}
