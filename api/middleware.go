package api

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// requestID tag every request with an id, an incoming id is kept
func (s Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()
	}
}

func (s Server) logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestURL := c.Request.URL.String()

		fields := []zap.Field{
			zap.String("type", "logger"),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("url", requestURL),
			zap.String("client_ip", c.ClientIP()),
		}

		zap.L().Debug(fmt.Sprintf("[START] %s %s", c.Request.Method, requestURL), fields...)

		c.Next()

		duration := time.Since(start)
		fields = append(fields,
			zap.Int("size", c.Writer.Size()),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration", duration.Milliseconds()))

		fn := zap.L().Info
		if duration > time.Second*10 {
			fn = zap.L().Warn
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			fn = zap.L().Error
		}

		fn(fmt.Sprintf("[END] %s %s (%d) in %s", c.Request.Method, requestURL, c.Writer.Status(), duration.String()), fields...)
	}
}

// recovery turn a panic into a 500, a broken connection is only logged
func (s Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			zap.L().Error("[Recovery] panic recovered",
				zap.Stack("stack"),
				zap.Any("panic", recovered),
				zap.String("type", "recovery"),
				zap.String("request_id", c.GetString(requestIDKey)),
				zap.String("method", c.Request.Method),
				zap.String("url", c.Request.URL.String()))

			if err, ok := recovered.(error); ok && brokenPipe(err) {
				c.Error(err) // nolint: errcheck
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, Response{Error: "internal server error"})
		}()

		c.Next()
	}
}

func brokenPipe(err error) bool {
	ne, ok := err.(*net.OpError)
	if !ok {
		return false
	}

	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}

	message := strings.ToLower(se.Error())
	return strings.Contains(message, "broken pipe") || strings.Contains(message, "connection reset by peer")
}
