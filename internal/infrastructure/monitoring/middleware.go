package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Outcome labels shared by action and backend metrics
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timer measures operation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	action  string
}

// NewTimer creates a new timer for a workflow action. A nil metrics
// collector yields a timer whose Stop is a no-op.
func NewTimer(metrics *Metrics, action string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		action:  action,
	}
}

// Stop stops the timer and records the action outcome
func (t *Timer) Stop(err error) time.Duration {
	duration := time.Since(t.start)
	if t.metrics == nil {
		return duration
	}

	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	t.metrics.RecordAction(t.action, status, duration)
	return duration
}
