package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the gin context key of the request-scoped logger.
const LoggerKey = "logger"

// ContextLogger returns the request-scoped logger, or the global one outside a request.
func ContextLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}

// ErrorHandler turns panics and errors attached with c.Error into a JSON 500
// when the handler has not written a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ContextLogger(c).Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		logger := ContextLogger(c)
		for _, e := range c.Errors {
			logger.Error("Request error", zap.String("path", c.Request.URL.Path), zap.Error(e.Err))
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}
}
