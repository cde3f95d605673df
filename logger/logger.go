package logger

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
	entryKey        = "logEntry"
)

// New builds the process logger. Unknown levels fall back to info.
func New(service, level string, out io.Writer) *logrus.Entry {
	l := logrus.New()
	if out == nil {
		out = os.Stdout
	}
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	hostname, _ := os.Hostname()
	return l.WithFields(logrus.Fields{"service": service, "hostname": hostname})
}

// Middleware tags each request with an id and logs its outcome.
func Middleware(base *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)
		c.Set(requestIDKey, reqID)
		entry := base.WithField("request_id", reqID)
		c.Set(entryKey, entry)

		c.Next()

		fields := logrus.Fields{
			"action":     "http_request",
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			entry.WithFields(fields).Error(c.Errors.String())
		case c.Writer.Status() >= 400:
			entry.WithFields(fields).Warn("request rejected")
		default:
			entry.WithFields(fields).Info("request served")
		}
	}
}

// From returns the request-scoped entry, or a bare one outside a request.
func From(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(entryKey); ok {
		if e, ok := v.(*logrus.Entry); ok {
			return e
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
