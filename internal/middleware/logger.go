package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/trace"
)

// RequestTrace assigns every request a trace id (client-supplied X-Request-ID
// wins) and attaches it to the request context for downstream logging.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = c.GetHeader("X-Request-Id")
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(trace.WithID(c.Request.Context(), traceID))
		c.Header("X-Request-ID", traceID)
		c.Next()
	}
}

// RequestLogger logs each request with its trace id and recovers from panics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logRequest(c, start, "panic", err.Error())
				log.Printf("panic_stack trace_id=%s stack=%s", trace.ID(c.Request.Context()), debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"statusCode": http.StatusInternalServerError,
					"message":    "Something went wrong.",
				})
				return
			}
			if c.Writer.Status() >= http.StatusInternalServerError || len(c.Errors) > 0 {
				logRequest(c, start, "error", c.Errors.String())
				return
			}
			logRequest(c, start, "ok", "")
		}()

		c.Next()
	}
}

func logRequest(c *gin.Context, start time.Time, outcome, message string) {
	log.Printf(
		"request outcome=%s status=%d method=%s path=%s client_ip=%s trace_id=%s latency=%s error=%q",
		outcome,
		c.Writer.Status(),
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		trace.ID(c.Request.Context()),
		time.Since(start),
		message,
	)
}
