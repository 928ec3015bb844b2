package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/pkg/response"
)

const msgInternal = "Internal server error"

// Logger writes one structured line per request. 5xx responses log at
// error level, 4xx at warn.
func Logger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ipFromCtx(c),
			"request_id": c.GetString("request_id"),
		})
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			entry = entry.WithField("user_id", uid)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}

// Recovery turns panics into a 500 envelope. The stack is included in
// the response only when exposeStack is set.
func Recovery(log *logrus.Logger, exposeStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			stack := string(debug.Stack())
			log.WithFields(logrus.Fields{
				"panic":      fmt.Sprint(rec),
				"path":       c.Request.URL.Path,
				"request_id": c.GetString("request_id"),
			}).Error("panic recovered")

			var detail interface{}
			if exposeStack {
				detail = fmt.Sprint(rec)
			} else {
				stack = ""
			}
			response.Internal(c, http.StatusInternalServerError, msgInternal, detail, stack)
			c.Abort()
		}()
		c.Next()
	}
}
