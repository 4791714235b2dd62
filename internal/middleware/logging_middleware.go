package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rahat/tastybites-backend/pkg/logger"
)

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey = "request_id"
	// LoggerKey is the context key for the request-scoped logger
	LoggerKey = "logger"
)

// RequestLogger is a middleware that logs HTTP requests
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		requestLogger := logger.WithContext(map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Set(LoggerKey, requestLogger)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		fields := map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"duration":   duration.String(),
			"client_ip":  c.ClientIP(),
		}

		if userID, exists := c.Get("user_id"); exists {
			fields["user_id"] = userID
		}

		switch {
		case status >= 500:
			logger.Error("HTTP request failed", nil, fields)
		case status >= 400:
			logger.Warn("HTTP request error", fields)
		default:
			logger.Info("HTTP request completed", fields)
		}
	}
}

// GetLoggerFromContext returns the request-scoped logger fields helper.
// Falls back to the global logger when middleware did not run (tests).
func GetLoggerFromContext(c *gin.Context) *RequestLoggerHelper {
	requestID, _ := c.Get(RequestIDKey)
	id, _ := requestID.(string)
	return &RequestLoggerHelper{requestID: id}
}

// RequestLoggerHelper carries the request ID into structured log calls
type RequestLoggerHelper struct {
	requestID string
}

func (l *RequestLoggerHelper) withRequestID(fields []map[string]interface{}) []map[string]interface{} {
	if l.requestID == "" {
		return fields
	}
	merged := map[string]interface{}{"request_id": l.requestID}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return []map[string]interface{}{merged}
}

// Debug logs a debug message with the request ID attached
func (l *RequestLoggerHelper) Debug(msg string, fields ...map[string]interface{}) {
	logger.Debug(msg, l.withRequestID(fields)...)
}

// Info logs an info message with the request ID attached
func (l *RequestLoggerHelper) Info(msg string, fields ...map[string]interface{}) {
	logger.Info(msg, l.withRequestID(fields)...)
}

// Warn logs a warning message with the request ID attached
func (l *RequestLoggerHelper) Warn(msg string, fields ...map[string]interface{}) {
	logger.Warn(msg, l.withRequestID(fields)...)
}

// Error logs an error message with the request ID attached
func (l *RequestLoggerHelper) Error(msg string, err error, fields ...map[string]interface{}) {
	logger.Error(msg, err, l.withRequestID(fields)...)
}
